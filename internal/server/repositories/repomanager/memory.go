package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/favkeeper/internal/dbx"
	"github.com/dmitrijs2005/favkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves a single process-local store. The db
// argument of its factories is ignored and may be nil.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
