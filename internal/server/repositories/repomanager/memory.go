package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/diets"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/memory"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/userdiets"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one memory.Store.
// The DBTX and *sql.DB arguments are ignored.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn dbx.TxFunc) error {
	return m.store.Tx(ctx, func(ctx context.Context) error {
		return fn(ctx, nil)
	})
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Diets(dbx.DBTX) diets.Repository {
	return m.store.Diets()
}

func (m *InMemoryRepositoryManager) UserDiets(dbx.DBTX) userdiets.Repository {
	return m.store.UserDiets()
}
