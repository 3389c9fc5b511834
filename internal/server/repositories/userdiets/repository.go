package userdiets

import (
	"context"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.UserDiet) (*models.UserDiet, error)
	Find(ctx context.Context, userID, dietID string) (*models.UserDiet, error)
	DeleteByDiet(ctx context.Context, dietID string) error
}
