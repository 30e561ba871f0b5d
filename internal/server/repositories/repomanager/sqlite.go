package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/notes"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager serves the modernc SQLite backend, file based or
// in memory. Foreign keys must be enabled in the DSN.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string { return "sqlite" }

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3")
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
