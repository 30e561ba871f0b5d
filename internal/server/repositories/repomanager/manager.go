package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/notes"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver the backend is opened with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Notes(db dbx.DBTX) notes.Repository
}

// New returns the manager for the configured storage backend.
func New(backend string) (RepositoryManager, error) {
	switch backend {
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(), nil
	case config.BackendSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
