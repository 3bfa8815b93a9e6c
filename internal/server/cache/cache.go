// Package cache provides a read-through cache for a user's mapping list.
package cache

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

// MappingCache stores the full mapping list of one user.
//
// Every user has a generation that Invalidate advances. Get reports the
// generation seen on a miss; Set stores a list only while that generation is
// still current, so a list read before a write can never be cached after it.
// Read failures behave like a miss.
type MappingCache interface {
	Get(ctx context.Context, userID string) (ms []*models.Mapping, gen int64, ok bool)
	Set(ctx context.Context, userID string, gen int64, ms []*models.Mapping)
	Invalidate(ctx context.Context, userID string) error
}

// Nop never caches anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]*models.Mapping, int64, bool) { return nil, 0, false }
func (Nop) Set(context.Context, string, int64, []*models.Mapping)        {}
func (Nop) Invalidate(context.Context, string) error                     { return nil }
