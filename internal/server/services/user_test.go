package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(m repomanager.RepositoryManager) *UserService {
	s := NewUserService(nil, m)
	s.passwordCost = bcrypt.MinCost
	return s
}

type fakeUsersRepo struct {
	createErr error
	listErr   error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

func (f *fakeUsersRepo) ListBySession(ctx context.Context, sid string) ([]*models.User, error) {
	return nil, f.listErr
}

func (f *fakeUsersRepo) GetBySession(ctx context.Context, sid string) (*models.User, error) {
	return nil, common.ErrorNotFound
}

// failingUsersManager serves users from a fake and everything else from memory.
type failingUsersManager struct {
	*repomanager.InMemoryRepositoryManager
	users *fakeUsersRepo
}

func (m *failingUsersManager) Users(dbx.DBTX) users.Repository { return m.users }

func TestUserService_Register_StoresHashedPassword(t *testing.T) {
	m := repomanager.NewInMemoryRepositoryManager()
	s := newTestUserService(m)

	pw := "secret"
	u, err := s.Register(context.Background(), "sid-1", "John Doe", &pw)
	require.NoError(t, err)
	require.NotNil(t, u.Password)
	assert.NotEqual(t, pw, *u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(pw)))
	assert.Len(t, u.ID, 36)
	assert.False(t, u.CreatedAt.IsZero())

	list, err := s.ListBySession(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "John Doe", list[0].Name)
}

func TestUserService_Register_WithoutPassword(t *testing.T) {
	s := newTestUserService(repomanager.NewInMemoryRepositoryManager())

	u, err := s.Register(context.Background(), "sid-1", "Jane", nil)
	require.NoError(t, err)
	assert.Nil(t, u.Password)
}

func TestUserService_Register_Validation(t *testing.T) {
	s := newTestUserService(repomanager.NewInMemoryRepositoryManager())

	_, err := s.Register(context.Background(), "sid-1", "", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "", "John", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUserService_Register_RepoError(t *testing.T) {
	boom := errors.New("boom")
	m := &failingUsersManager{
		InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager(),
		users:                     &fakeUsersRepo{createErr: boom},
	}
	s := newTestUserService(m)

	_, err := s.Register(context.Background(), "sid-1", "John", nil)
	assert.ErrorIs(t, err, boom)
}

func TestUserService_ListBySession(t *testing.T) {
	s := newTestUserService(repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	list, err := s.ListBySession(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Register(ctx, "a", "A1", nil)
	require.NoError(t, err)
	_, err = s.Register(ctx, "a", "A2", nil)
	require.NoError(t, err)
	_, err = s.Register(ctx, "b", "B1", nil)
	require.NoError(t, err)

	list, err = s.ListBySession(ctx, "a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].Name)
	assert.Equal(t, "A2", list[1].Name)
}

func TestUserService_ListBySession_RepoError(t *testing.T) {
	boom := errors.New("boom")
	m := &failingUsersManager{
		InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager(),
		users:                     &fakeUsersRepo{listErr: boom},
	}
	s := newTestUserService(m)

	_, err := s.ListBySession(context.Background(), "sid")
	assert.ErrorIs(t, err, boom)
}
