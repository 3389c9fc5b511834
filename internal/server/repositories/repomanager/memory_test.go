package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager_SharesOneStore(t *testing.T) {
	var m RepositoryManager = NewInMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx, nil))

	_, err := m.Users(nil).Create(ctx, &models.User{ID: "u-1", Name: "John Doe"})
	require.NoError(t, err)

	// a repo obtained inside a transaction sees rows written outside it
	err = m.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := m.Diets(tx).Create(ctx, &models.Diet{ID: "d-1"}); err != nil {
			return err
		}
		_, err := m.UserDiets(tx).Create(ctx, &models.UserDiet{ID: "ud-1", UserID: "u-1", DietID: "d-1"})
		return err
	})
	require.NoError(t, err)

	n, err := m.Diets(nil).CountByOwner(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInMemoryRepositoryManager_RollsBack(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()

	err := m.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := m.Diets(tx).Create(ctx, &models.Diet{ID: "d-1"}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	_, err = m.Diets(nil).Get(ctx, "d-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
