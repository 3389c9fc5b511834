package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/diets"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/userdiets"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns the schema
// and transaction mechanics of one storage backend.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	WithTx(ctx context.Context, db *sql.DB, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	Diets(db dbx.DBTX) diets.Repository
	UserDiets(db dbx.DBTX) userdiets.Repository
}
