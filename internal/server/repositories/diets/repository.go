package diets

import (
	"context"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, diet *models.Diet) (*models.Diet, error)
	Get(ctx context.Context, id string) (*models.Diet, error)
	// ListByOwner returns diets owned by userID. A non-nil onDiet filters
	// by the is_on_diet flag.
	ListByOwner(ctx context.Context, userID string, onDiet *bool) ([]*models.Diet, error)
	CountByOwner(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, id string, patch models.DietPatch) (*models.Diet, error)
	Delete(ctx context.Context, id string) error
}
