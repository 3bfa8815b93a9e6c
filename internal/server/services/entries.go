package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/veildiary/internal/anonymize"
	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Direction selects the TransformText mode.
type Direction int

const (
	Anonymize Direction = iota
	Deanonymize
)

// EntryRecorder receives a notification for every stored entry.
type EntryRecorder interface {
	EntryCreated(anonymized bool)
}

type nopRecorder struct{}

func (nopRecorder) EntryCreated(bool) {}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mappings    *MappingService
	recorder    EntryRecorder
	feedLimit   int
	logger      logging.Logger
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, mappings *MappingService, recorder EntryRecorder, feedLimit int, logger logging.Logger) *EntryService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if feedLimit <= 0 {
		feedLimit = 50
	}
	return &EntryService{
		db:          db,
		repomanager: m,
		mappings:    mappings,
		recorder:    recorder,
		feedLimit:   feedLimit,
		logger:      logger.With("module", "entries"),
	}
}

// Create stores a new entry. With anon set the caller's current mappings
// are applied and the text before substitution is kept as OriginalContent;
// without any mappings the entry is stored as written.
func (s *EntryService) Create(ctx context.Context, owner, content string, isPublic, anon bool) (*models.Entry, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewValidationError("content", "must not be empty")
	}

	entry := &models.Entry{
		ID:       uuid.NewString(),
		UserID:   owner,
		Content:  content,
		IsPublic: isPublic,
	}

	if anon {
		ms, err := s.mappings.Current(ctx, owner)
		if err != nil {
			return nil, err
		}
		if len(ms) > 0 {
			entry.OriginalContent = content
			entry.Content = anonymize.Anonymize(content, models.Pairs(ms))
			entry.IsAnonymized = true
		}
	}

	entry, err := s.repomanager.Entries(s.db).Create(ctx, entry)
	if err != nil {
		s.logger.Error(ctx, "create entry failed", "user_id", owner, "error", err)
		return nil, common.NewStorageError("create entry", err)
	}
	entry.Username = s.usernameOf(ctx, owner)

	s.recorder.EntryCreated(entry.IsAnonymized)
	s.logger.Info(ctx, "entry created", "user_id", owner, "entry_id", entry.ID, "anonymized", entry.IsAnonymized)
	return entry, nil
}

// Feed returns the newest public entries of all users. OriginalContent is
// stripped from entries the viewer does not own; viewer may be empty.
func (s *EntryService) Feed(ctx context.Context, viewer string) ([]*models.Entry, error) {
	es, err := s.repomanager.Entries(s.db).ListPublic(ctx, s.feedLimit)
	if err != nil {
		return nil, common.NewStorageError("list feed", err)
	}
	return redact(es, viewer), nil
}

// Mine returns all of owner's entries including private ones.
func (s *EntryService) Mine(ctx context.Context, owner string) ([]*models.Entry, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}
	es, err := s.repomanager.Entries(s.db).ListByUser(ctx, owner, false, 0)
	if err != nil {
		return nil, common.NewStorageError("list entries", err)
	}
	return es, nil
}

// ByUser returns the public entries of the user called username.
func (s *EntryService) ByUser(ctx context.Context, viewer, username string) ([]*models.Entry, error) {
	p, err := s.repomanager.Profiles(s.db).GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.NewStorageError("find profile", err)
	}

	es, err := s.repomanager.Entries(s.db).ListByUser(ctx, p.UserID, true, s.feedLimit)
	if err != nil {
		return nil, common.NewStorageError("list entries", err)
	}
	return redact(es, viewer), nil
}

// Delete removes owner's entry id. Entries of other users and unknown ids
// yield common.ErrorNotFound. Mappings are not touched.
func (s *EntryService) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return common.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	err := s.repomanager.Entries(s.db).Delete(ctx, owner, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.NewStorageError("delete entry", err)
	}

	s.logger.Info(ctx, "entry deleted", "user_id", owner, "entry_id", id)
	return nil
}

// TransformText runs text through the caller's current mappings.
func (s *EntryService) TransformText(ctx context.Context, owner, text string, dir Direction) (string, error) {
	ms, err := s.mappings.Current(ctx, owner)
	if err != nil {
		return "", err
	}

	pairs := models.Pairs(ms)
	if dir == Deanonymize {
		return anonymize.Deanonymize(text, pairs), nil
	}
	return anonymize.Anonymize(text, pairs), nil
}

func (s *EntryService) usernameOf(ctx context.Context, userID string) string {
	p, err := s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "profile lookup failed", "user_id", userID, "error", err)
		}
		return common.AnonymousUsername
	}
	return p.Username
}

func redact(es []*models.Entry, viewer string) []*models.Entry {
	for _, e := range es {
		if e.UserID != viewer {
			e.OriginalContent = ""
		}
	}
	return es
}
