// Package services contains server-side business logic. This file implements
// UserService, which registers users under a browser session token.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides registration and lookup of users by session token.
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	passwordCost int
}

// NewUserService constructs a UserService on top of the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m, passwordCost: bcrypt.DefaultCost}
}

// SetPasswordCost overrides the bcrypt cost used for new passwords.
func (s *UserService) SetPasswordCost(cost int) {
	s.passwordCost = cost
}

// Register stores a new user bound to sessionID. The optional password is
// kept only as a bcrypt hash; it is not consulted by any request path.
func (s *UserService) Register(ctx context.Context, sessionID, name string, password *string) (*models.User, error) {
	if sessionID == "" || name == "" {
		return nil, common.ErrorValidation
	}

	user := &models.User{
		ID:        uuid.NewString(),
		SessionID: &sessionID,
		Name:      name,
	}

	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), s.passwordCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		h := string(hash)
		user.Password = &h
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// ListBySession returns all users registered under sessionID. No match is
// an empty list, not an error.
func (s *UserService) ListBySession(ctx context.Context, sessionID string) ([]*models.User, error) {
	list, err := s.repomanager.Users(s.db).ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}
