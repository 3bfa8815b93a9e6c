package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

const profileColumns = `id, user_id, username, COALESCE(bio, ''), COALESCE(profile_picture_url, ''), created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO user_profiles (user_id, username)
		VALUES ($1, $2)
		RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, p.UserID, p.Username).Scan(&p.ID, &p.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE username = $1`, username)
}

func (r *PostgresRepository) Update(ctx context.Context, userID, bio, pictureURL string) (*models.Profile, error) {
	query := `
		UPDATE user_profiles
		SET bio = NULLIF($2, ''), profile_picture_url = NULLIF($3, '')
		WHERE user_id = $1
		RETURNING ` + profileColumns

	return r.getOne(ctx, query, userID, bio, pictureURL)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Profile, error) {
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.UserID, &p.Username, &p.Bio, &p.ProfilePictureURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
