package users

import (
	"context"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.User, error)
	GetBySession(ctx context.Context, sessionID string) (*models.User, error)
}
