package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/veildiary/internal/server/storage"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

const maxBioLen = 500

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   storage.Presigner
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, presigner storage.Presigner, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		presigner:   presigner,
		logger:      logger.With("module", "profiles"),
	}
}

// NormalizeUsername trims and lower-cases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks an already normalized username.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return common.NewValidationError("username", "must be 3-32 characters of a-z, 0-9 or _")
	}
	return nil
}

// SetUsername creates the caller's profile.
func (s *ProfileService) SetUsername(ctx context.Context, userID, username string) (*models.Profile, error) {
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	p, err := s.repomanager.Profiles(s.db).Create(ctx, &models.Profile{UserID: userID, Username: username})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, common.NewStorageError("create profile", err)
	}

	s.logger.Info(ctx, "username set", "user_id", userID, "username", username)
	return p, nil
}

func (s *ProfileService) GetMyProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}
	return s.wrap("get profile", func() (*models.Profile, error) {
		return s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
	})
}

func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	username = NormalizeUsername(username)
	return s.wrap("get profile", func() (*models.Profile, error) {
		return s.repomanager.Profiles(s.db).GetByUsername(ctx, username)
	})
}

func (s *ProfileService) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetProfile(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID, bio, pictureURL string) (*models.Profile, error) {
	if userID == "" {
		return nil, common.ErrUnauthenticated
	}
	bio = strings.TrimSpace(bio)
	if len([]rune(bio)) > maxBioLen {
		return nil, common.NewValidationError("bio", "is too long")
	}
	return s.wrap("update profile", func() (*models.Profile, error) {
		return s.repomanager.Profiles(s.db).Update(ctx, userID, bio, strings.TrimSpace(pictureURL))
	})
}

// AvatarUploadURL returns an object key and a presigned PUT URL for it.
func (s *ProfileService) AvatarUploadURL(ctx context.Context, userID string) (string, string, error) {
	if userID == "" {
		return "", "", common.ErrUnauthenticated
	}
	key, url, err := s.presigner.PresignAvatarUpload(ctx, userID)
	if err != nil {
		return "", "", common.NewStorageError("presign avatar upload", err)
	}
	return key, url, nil
}

// wrap passes ErrorNotFound through and turns every other failure into a
// StorageError.
func (s *ProfileService) wrap(op string, fn func() (*models.Profile, error)) (*models.Profile, error) {
	p, err := fn()
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.NewStorageError(op, err)
	}
	return p, nil
}
