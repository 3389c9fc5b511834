package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NewDiet is the input of DietService.Create.
type NewDiet struct {
	Name        string
	Description string
	DateHour    string
}

// DietService manages diet entries on behalf of the user owning a session.
// Every method resolves that user first and fails with ErrUserNotFound when
// there is none.
type DietService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDietService constructs a DietService on top of the given repositories.
func NewDietService(db *sql.DB, m repomanager.RepositoryManager) *DietService {
	return &DietService{db: db, repomanager: m}
}

func (s *DietService) owner(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrUserNotFound
	}
	u, err := s.repomanager.Users(s.db).GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}
	return u, nil
}

// Create stores a new diet with is_on_diet=false and records the session
// user as its owner. Both rows are written in one transaction.
func (s *DietService) Create(ctx context.Context, sessionID string, in NewDiet) (*models.Diet, error) {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var created *models.Diet
	err = s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		diets := s.repomanager.Diets(tx)

		d := &models.Diet{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Description: in.Description,
			DateHour:    in.DateHour,
			IsOnDiet:    false,
		}
		if _, err := diets.Create(ctx, d); err != nil {
			return fmt.Errorf("error creating diet: %w", err)
		}

		stored, err := diets.Get(ctx, d.ID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrDietNotFound
			}
			return fmt.Errorf("error reading diet: %w", err)
		}

		link := &models.UserDiet{ID: uuid.NewString(), UserID: user.ID, DietID: stored.ID}
		if _, err := s.repomanager.UserDiets(tx).Create(ctx, link); err != nil {
			return fmt.Errorf("error creating diet owner: %w", err)
		}

		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns a diet owned by the session user.
func (s *DietService) Get(ctx context.Context, sessionID, dietID string) (*models.Diet, error) {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ownership(ctx, user.ID, dietID); err != nil {
		return nil, err
	}

	d, err := s.repomanager.Diets(s.db).Get(ctx, dietID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("owned diet row missing: %w", ErrDietNotFound)
		}
		return nil, fmt.Errorf("error reading diet: %w", err)
	}
	return d, nil
}

// List returns every diet owned by the session user.
func (s *DietService) List(ctx context.Context, sessionID string) ([]*models.Diet, error) {
	return s.list(ctx, sessionID, nil)
}

// ListByStatus returns the session user's diets whose is_on_diet equals onDiet.
func (s *DietService) ListByStatus(ctx context.Context, sessionID string, onDiet bool) ([]*models.Diet, error) {
	return s.list(ctx, sessionID, &onDiet)
}

func (s *DietService) list(ctx context.Context, sessionID string, onDiet *bool) ([]*models.Diet, error) {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	list, err := s.repomanager.Diets(s.db).ListByOwner(ctx, user.ID, onDiet)
	if err != nil {
		return nil, fmt.Errorf("error listing diets: %w", err)
	}
	return list, nil
}

// CountRegistered returns how many diets the session user owns.
func (s *DietService) CountRegistered(ctx context.Context, sessionID string) (int64, error) {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	n, err := s.repomanager.Diets(s.db).CountByOwner(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("error counting diets: %w", err)
	}
	return n, nil
}

// Update applies a partial update to a diet owned by the session user and
// returns the stored row. An empty patch returns the row unchanged.
func (s *DietService) Update(ctx context.Context, sessionID, dietID string, patch models.DietPatch) (*models.Diet, error) {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.ownership(ctx, user.ID, dietID); err != nil {
		return nil, err
	}

	d, err := s.repomanager.Diets(s.db).Update(ctx, dietID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrDietNotFound
		}
		return nil, fmt.Errorf("error updating diet: %w", err)
	}
	return d, nil
}

// Delete removes a diet owned by the session user together with its
// ownership rows.
func (s *DietService) Delete(ctx context.Context, sessionID, dietID string) error {
	user, err := s.owner(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.ownership(ctx, user.ID, dietID); err != nil {
		return err
	}

	return s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.UserDiets(tx).DeleteByDiet(ctx, dietID); err != nil {
			return fmt.Errorf("error deleting diet owner: %w", err)
		}
		if err := s.repomanager.Diets(tx).Delete(ctx, dietID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrDietNotFound
			}
			return fmt.Errorf("error deleting diet: %w", err)
		}
		return nil
	})
}

func (s *DietService) ownership(ctx context.Context, userID, dietID string) error {
	if _, err := s.repomanager.UserDiets(s.db).Find(ctx, userID, dietID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrDietNotFound
		}
		return fmt.Errorf("error resolving diet owner: %w", err)
	}
	return nil
}
