// Package server wires configuration, storage, services and transports
// together and runs the gRPC and HTTP endpoints until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/technotes/internal/filex"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/events"
	"github.com/dmitrijs2005/technotes/internal/server/metrics"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/technotes/internal/server/rest"
	"github.com/dmitrijs2005/technotes/internal/server/services"

	gs "github.com/dmitrijs2005/technotes/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	metrics        *metrics.Metrics
	publisher      events.Publisher
	accountService *services.AccountService
	noteService    *services.NoteService
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	m, err := repomanager.New(c.StorageBackend)
	if err != nil {
		return nil, err
	}

	db, err := openDB(m, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	pub := events.NewPublisher(c.KafkaBrokers, c.KafkaTopic)

	as := services.NewAccountService(db, m, pub, logger, c)
	ns := services.NewNoteService(db, m, as, pub, logger, c)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		metrics:        metrics.New(),
		publisher:      pub,
		accountService: as,
		noteService:    ns,
	}, nil
}

// openDB opens and pings the configured database. SQLite gets a single
// connection: in-memory databases live per connection and the file backend
// allows one writer at a time.
func openDB(m repomanager.RepositoryManager, c *config.Config) (*sql.DB, error) {
	if c.StorageBackend == config.BackendSQLite {
		if path := filex.SQLiteFilePath(c.DatabaseDSN); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(m.DriverName(), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if c.StorageBackend == config.BackendSQLite {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.metrics, app.accountService, app.noteService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.logger, app.metrics, app.accountService, app.noteService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails, then releases the publisher and the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
}

func (app *App) close() {
	ctx := context.Background()
	if err := app.publisher.Close(); err != nil {
		app.logger.Error(ctx, "publisher close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	app.logger.Info(ctx, "App stopped")
}
