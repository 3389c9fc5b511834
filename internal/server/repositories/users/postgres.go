// Package users provides the PostgreSQL-backed repository for registered users.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user and fills CreatedAt from the database.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, session_id, name, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.SessionID, user.Name, user.Password).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// ListBySession returns every user registered under sessionID, oldest first.
func (r *PostgresRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.User, error) {
	query :=
		`SELECT id, session_id, name, password, created_at FROM users
		 WHERE session_id = $1
		 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// GetBySession returns the first user registered under sessionID or
// common.ErrorNotFound.
func (r *PostgresRepository) GetBySession(ctx context.Context, sessionID string) (*models.User, error) {
	query :=
		`SELECT id, session_id, name, password, created_at FROM users
		 WHERE session_id = $1
		 ORDER BY created_at
		 LIMIT 1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		u         models.User
		sessionID sql.NullString
		password  sql.NullString
	)
	if err := s.Scan(&u.ID, &sessionID, &u.Name, &password, &u.CreatedAt); err != nil {
		return nil, err
	}
	if sessionID.Valid {
		u.SessionID = &sessionID.String
	}
	if password.Valid {
		u.Password = &password.String
	}
	return &u, nil
}
