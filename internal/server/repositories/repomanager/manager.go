// Package repomanager vends repository implementations for the configured
// storage backend and owns the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/favkeeper/internal/dbx"
	"github.com/dmitrijs2005/favkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
