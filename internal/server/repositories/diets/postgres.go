// Package diets provides the PostgreSQL-backed repository for diet entries.
// Ownership is resolved through the user_diet join table.
package diets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

const dietColumns = `d.id, d.name, d.description, d.date_hour, d.is_on_diet, d.created_at`

// PostgresRepository implements diet storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the diet and fills CreatedAt from the database.
func (r *PostgresRepository) Create(ctx context.Context, diet *models.Diet) (*models.Diet, error) {
	query :=
		`INSERT INTO diets (id, name, description, date_hour, is_on_diet)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		diet.ID, diet.Name, diet.Description, diet.DateHour, diet.IsOnDiet).Scan(&diet.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return diet, nil
}

// Get returns the diet with the given id or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Diet, error) {
	query := `SELECT ` + dietColumns + ` FROM diets d WHERE d.id = $1`

	d, err := scanDiet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string, onDiet *bool) ([]*models.Diet, error) {
	query := `SELECT ` + dietColumns + ` FROM diets d
		JOIN user_diet ud ON ud.diet_id = d.id
		WHERE ud.user_id = $1`
	args := []any{userID}
	if onDiet != nil {
		query += ` AND d.is_on_diet = $2`
		args = append(args, *onDiet)
	}
	query += ` ORDER BY d.created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select diets: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Diet, 0)
	for rows.Next() {
		d, err := scanDiet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diet: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diets: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM diets d
		JOIN user_diet ud ON ud.diet_id = d.id
		WHERE ud.user_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Update applies patch to the diet and returns the stored row. An empty
// patch returns the current row untouched.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.DietPatch) (*models.Diet, error) {
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.DateHour != nil {
		set("date_hour", *patch.DateHour)
	}
	if patch.IsOnDiet != nil {
		set("is_on_diet", *patch.IsOnDiet)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE diets d SET %s WHERE d.id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), dietColumns)

	d, err := scanDiet(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// Delete removes the diet row; common.ErrorNotFound if nothing was deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diets WHERE id = $1`, id)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanDiet(s scanner) (*models.Diet, error) {
	var d models.Diet
	if err := s.Scan(&d.ID, &d.Name, &d.Description, &d.DateHour, &d.IsOnDiet, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
