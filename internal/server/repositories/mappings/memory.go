package mappings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps mappings in process memory. The mutex makes the
// lookup and write of Upsert one step.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[string]map[string]*models.Mapping // user id -> original -> row
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows: make(map[string]map[string]*models.Mapping),
		now:  time.Now,
	}
}

func (r *MemoryRepository) List(_ context.Context, userID string) ([]*models.Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Mapping, 0, len(r.rows[userID]))
	for _, m := range r.rows[userID] {
		c := *m
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, m *models.Mapping) (*models.Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byOriginal, ok := r.rows[m.UserID]
	if !ok {
		byOriginal = make(map[string]*models.Mapping)
		r.rows[m.UserID] = byOriginal
	}

	row, ok := byOriginal[m.Original]
	if ok {
		row.Pseudonym = m.Pseudonym
	} else {
		row = &models.Mapping{
			ID:        uuid.NewString(),
			UserID:    m.UserID,
			Original:  m.Original,
			Pseudonym: m.Pseudonym,
			CreatedAt: r.now(),
		}
		byOriginal[m.Original] = row
	}

	c := *row
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for original, m := range r.rows[userID] {
		if m.ID == id {
			delete(r.rows[userID], original)
			return nil
		}
	}
	return nil
}
