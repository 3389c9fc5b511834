// Package userdiets provides the PostgreSQL-backed repository for diet
// ownership rows.
package userdiets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, link *models.UserDiet) (*models.UserDiet, error) {
	query :=
		`INSERT INTO user_diet (id, user_id, diet_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`

	if err := r.db.QueryRowContext(ctx, query, link.ID, link.UserID, link.DietID).Scan(&link.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return link, nil
}

// Find returns the ownership row for (userID, dietID) or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, userID, dietID string) (*models.UserDiet, error) {
	query :=
		`SELECT id, user_id, diet_id, created_at FROM user_diet
		 WHERE user_id = $1 AND diet_id = $2
		 LIMIT 1`

	var link models.UserDiet
	err := r.db.QueryRowContext(ctx, query, userID, dietID).
		Scan(&link.ID, &link.UserID, &link.DietID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &link, nil
}

// DeleteByDiet removes every ownership row pointing at dietID.
func (r *PostgresRepository) DeleteByDiet(ctx context.Context, dietID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_diet WHERE diet_id = $1`, dietID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
