package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/mappings"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// service code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Entries(db dbx.DBTX) entries.Repository
	Mappings(db dbx.DBTX) mappings.Repository
}
