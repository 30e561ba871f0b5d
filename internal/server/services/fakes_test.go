package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/events"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/notes"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func boolPtr(b bool) *bool { return &b }

// --- fake accounts repository ---

type fakeAccountsRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Account
	seq  int

	findErr   error
	createErr error
	saveErr   error
	deleteErr error

	saved   []models.Account
	deleted []string
}

func newFakeAccountsRepo(accs ...models.Account) *fakeAccountsRepo {
	r := &fakeAccountsRepo{byID: map[string]*models.Account{}}
	for i := range accs {
		a := accs[i]
		r.byID[a.ID] = &a
	}
	return r
}

func (f *fakeAccountsRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	a.ID = fmt.Sprintf("acc-%d", f.seq)
	cp := *a
	f.byID[a.ID] = &cp
	return a, nil
}

func (f *fakeAccountsRepo) Save(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.byID[a.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *a
	f.byID[a.ID] = &cp
	f.saved = append(f.saved, cp)
	return nil
}

func (f *fakeAccountsRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAccountsRepo) FindByID(_ context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountsRepo) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, a := range f.byID {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccountsRepo) FindAll(context.Context) ([]models.AccountSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]models.AccountSummary, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a.Summary())
	}
	return out, nil
}

// --- fake notes repository ---

type fakeNotesRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*models.Note
	seq   int

	findErr   error
	createErr error
	saveErr   error
	deleteErr error
}

func newFakeNotesRepo(ns ...models.Note) *fakeNotesRepo {
	r := &fakeNotesRepo{byID: map[string]*models.Note{}}
	for i := range ns {
		n := ns[i]
		r.byID[n.ID] = &n
		r.order = append(r.order, n.ID)
	}
	return r
}

func (f *fakeNotesRepo) Create(_ context.Context, n *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	n.ID = fmt.Sprintf("note-%d", f.seq)
	cp := *n
	f.byID[n.ID] = &cp
	f.order = append(f.order, n.ID)
	return n, nil
}

func (f *fakeNotesRepo) Save(_ context.Context, n *models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.byID[n.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNotesRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeNotesRepo) FindByID(_ context.Context, id string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	n, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotesRepo) FindOneByOwner(_ context.Context, owner string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, id := range f.order {
		if f.byID[id].Owner == owner {
			cp := *f.byID[id]
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNotesRepo) FindAll(context.Context) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]models.Note, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

// --- fake repo manager ---

type fakeRepoManager struct {
	a *fakeAccountsRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) DriverName() string                            { return "sqlmock" }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository      { return m.a }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository            { return m.n }

// --- fake publisher ---

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
