package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/cache"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/mappings"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MappingService is the mapping store: per-user original -> pseudonym
// pairs with upsert semantics on the normalized original.
type MappingService struct {
	repo   mappings.Repository
	cache  cache.MappingCache
	logger logging.Logger
}

// NewMappingService binds the service to m's mapping repository over db.
func NewMappingService(db *sql.DB, m repomanager.RepositoryManager, c cache.MappingCache, logger logging.Logger) *MappingService {
	return NewMappingServiceWithRepo(m.Mappings(db), c, logger)
}

func NewMappingServiceWithRepo(repo mappings.Repository, c cache.MappingCache, logger logging.Logger) *MappingService {
	if c == nil {
		c = cache.Nop{}
	}
	return &MappingService{
		repo:   repo,
		cache:  c,
		logger: logger.With("module", "mappings"),
	}
}

// ValidateMapping rejects a pair whose sides are equal ignoring case and
// surrounding blanks.
func ValidateMapping(original, pseudonym string) error {
	if models.NormalizeOriginal(original) == strings.ToLower(models.NormalizePseudonym(pseudonym)) {
		return common.NewValidationError("pseudonym", "must differ from the original name")
	}
	return nil
}

// List returns the owner's mappings, newest first, for display. It may be
// served from the cache; anything that rewrites text uses Current instead.
func (s *MappingService) List(ctx context.Context, owner string) ([]*models.Mapping, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}

	ms, gen, ok := s.cache.Get(ctx, owner)
	if ok {
		return ms, nil
	}

	ms, err := s.Current(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, owner, gen, ms)
	return ms, nil
}

// Current reads the owner's mappings from storage, bypassing the cache, so
// a mapping saved a moment ago is always applied.
func (s *MappingService) Current(ctx context.Context, owner string) ([]*models.Mapping, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}

	ms, err := s.repo.List(ctx, owner)
	if err != nil {
		s.logger.Error(ctx, "list mappings failed", "user_id", owner, "error", err)
		return nil, common.NewStorageError("list mappings", err)
	}
	return ms, nil
}

func (s *MappingService) invalidate(ctx context.Context, owner string) {
	if err := s.cache.Invalidate(ctx, owner); err != nil {
		s.logger.Error(ctx, "mapping cache not invalidated, listing may lag until expiry", "user_id", owner, "error", err)
	}
}

// CreateOrUpdate stores original -> pseudonym for owner. Saving an original
// that already exists (after case folding) replaces its pseudonym and keeps
// the row's id and creation time.
func (s *MappingService) CreateOrUpdate(ctx context.Context, owner, original, pseudonym string) (*models.Mapping, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}

	original = models.NormalizeOriginal(original)
	pseudonym = models.NormalizePseudonym(pseudonym)
	if original == "" {
		return nil, common.NewValidationError("original", "must not be empty")
	}
	if pseudonym == "" {
		return nil, common.NewValidationError("pseudonym", "must not be empty")
	}

	m, err := s.repo.Upsert(ctx, &models.Mapping{UserID: owner, Original: original, Pseudonym: pseudonym})
	if err != nil {
		s.logger.Error(ctx, "save mapping failed", "user_id", owner, "error", err)
		return nil, common.NewStorageError("save mapping", err)
	}

	s.invalidate(ctx, owner)
	s.logger.Debug(ctx, "mapping saved", "user_id", owner, "mapping_id", m.ID)
	return m, nil
}

// Delete removes the owner's mapping id. Unknown, malformed or foreign ids
// succeed without effect.
func (s *MappingService) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return common.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if err := s.repo.Delete(ctx, owner, id); err != nil {
		s.logger.Error(ctx, "delete mapping failed", "user_id", owner, "mapping_id", id, "error", err)
		return common.NewStorageError("delete mapping", err)
	}

	s.invalidate(ctx, owner)
	return nil
}
