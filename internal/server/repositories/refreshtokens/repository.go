// Package refreshtokens stores the server side of refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, valid until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error
	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete reports whether a row was removed, so a token consumed twice
	// in parallel is only honoured once.
	Delete(ctx context.Context, token string) (bool, error)
}
