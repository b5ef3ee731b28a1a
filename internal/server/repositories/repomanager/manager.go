// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/akozinov/filedepot/internal/dbx"
	"github.com/akozinov/filedepot/internal/server/repositories/files"
	"github.com/akozinov/filedepot/internal/server/repositories/users"
)

// RepositoryManager builds repositories over a DBTX so the same constructor
// works inside and outside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
