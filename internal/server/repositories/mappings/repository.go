// Package mappings stores per-user anonymization mappings.
package mappings

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

// Repository persists mappings. Implementations expect Original and
// Pseudonym already normalized.
type Repository interface {
	// List returns the user's mappings, newest first.
	List(ctx context.Context, userID string) ([]*models.Mapping, error)
	// Upsert inserts m, or replaces the pseudonym of the existing
	// (UserID, Original) row keeping its id and creation time. It returns
	// the stored row.
	Upsert(ctx context.Context, m *models.Mapping) (*models.Mapping, error)
	// Delete removes the mapping only when userID owns it. Missing rows are
	// not an error.
	Delete(ctx context.Context, userID, id string) error
}
