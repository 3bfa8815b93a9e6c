package entries

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// ListPublic returns the newest public entries across all users.
	ListPublic(ctx context.Context, limit int) ([]*models.Entry, error)
	// ListByUser returns userID's entries, newest first. With publicOnly
	// private entries are left out; limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, publicOnly bool, limit int) ([]*models.Entry, error)
	// Delete removes the entry only when userID owns it and returns
	// common.ErrorNotFound otherwise.
	Delete(ctx context.Context, userID, id string) error
}
