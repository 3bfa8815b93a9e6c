// Package profiles persists public user profiles.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrAlreadyExists when the username is taken
	// or the user already has a profile.
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	// Update overwrites bio and picture URL of the user's profile.
	Update(ctx context.Context, userID, bio, pictureURL string) (*models.Profile, error)
}
