// Package entries provides PostgreSQL-backed storage for diary entries.
package entries

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
)

// Reads join the author's profile; authors without one show up as
// common.AnonymousUsername.
const selectEntries = `
	SELECT e.id, e.user_id, e.content, COALESCE(e.original_content, ''),
	       e.is_public, e.is_anonymized, e.created_at, COALESCE(p.username, $1)
	FROM entries e
	LEFT JOIN user_profiles p ON p.user_id = e.user_id`

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (id, user_id, content, original_content, is_public, is_anonymized)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Content, entry.OriginalContent, entry.IsPublic, entry.IsAnonymized,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListPublic(ctx context.Context, limit int) ([]*models.Entry, error) {
	query := selectEntries + `
	WHERE e.is_public
	ORDER BY e.created_at DESC
	LIMIT $2`

	return r.list(ctx, query, common.AnonymousUsername, limit)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, publicOnly bool, limit int) ([]*models.Entry, error) {
	var b strings.Builder
	b.WriteString(selectEntries)
	b.WriteString(`
	WHERE e.user_id = $2`)
	if publicOnly {
		b.WriteString(` AND e.is_public`)
	}
	b.WriteString(`
	ORDER BY e.created_at DESC`)

	args := []any{common.AnonymousUsername, userID}
	if limit > 0 {
		b.WriteString(`
	LIMIT $3`)
		args = append(args, limit)
	}

	return r.list(ctx, b.String(), args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Content, &e.OriginalContent,
			&e.IsPublic, &e.IsAnonymized, &e.CreatedAt, &e.Username,
		); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

