package mappings

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Mapping, error) {
	query :=
		`SELECT id, user_id, original, pseudonym, created_at
		 FROM anonymization_mappings
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Mapping, 0)
	for rows.Next() {
		m := &models.Mapping{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Original, &m.Pseudonym, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Upsert relies on the (user_id, original) unique constraint, so concurrent
// saves of the same name converge on one row.
func (r *PostgresRepository) Upsert(ctx context.Context, m *models.Mapping) (*models.Mapping, error) {
	query :=
		`INSERT INTO anonymization_mappings (id, user_id, original, pseudonym)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, original) DO UPDATE SET pseudonym = EXCLUDED.pseudonym
		 RETURNING id, user_id, original, pseudonym, created_at`

	out := &models.Mapping{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), m.UserID, m.Original, m.Pseudonym).
		Scan(&out.ID, &out.UserID, &out.Original, &out.Pseudonym, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM anonymization_mappings WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
