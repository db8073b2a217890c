// Package wire provides dependency injection for the casedesk application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/example/casedesk/internal/adapters/csvreport"
	"github.com/example/casedesk/internal/adapters/sqlite"
	"github.com/example/casedesk/internal/app"
	"github.com/example/casedesk/internal/config"
	"github.com/example/casedesk/internal/db"
	"github.com/example/casedesk/internal/logging"
	"github.com/example/casedesk/internal/ports/primary"
)

// Overrides are command-line values that take precedence over config.
type Overrides struct {
	Dir      string
	DBPath   string
	LogLevel string
	SeedSize int
	RandSeed uint64
}

var (
	overrides   Overrides
	cfg         *config.Config
	logger      *slog.Logger
	database    *sql.DB
	caseService primary.CaseService
	initErr     error
	once        sync.Once
)

// Configure sets overrides. It must be called before any accessor.
func Configure(o Overrides) {
	overrides = o
}

// Configured returns the overrides currently in effect.
func Configured() Overrides {
	return overrides
}

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// Logger returns the shared logger. Before initialization succeeds it
// returns slog.Default().
func Logger() *slog.Logger {
	once.Do(initServices)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// CaseService returns the singleton CaseService instance.
func CaseService() (primary.CaseService, error) {
	once.Do(initServices)
	return caseService, initErr
}

// DB returns the open database handle.
func DB() (*sql.DB, error) {
	once.Do(initServices)
	return database, initErr
}

// NewSession builds a session around the CaseService and loads it.
// Each presentation lifetime gets its own session.
func NewSession(ctx context.Context) (*app.Session, *primary.LoadResponse, error) {
	svc, err := CaseService()
	if err != nil {
		return nil, nil, err
	}
	session := app.NewSession(svc)
	resp, err := session.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session, resp, nil
}

// Close releases the database connection.
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir := overrides.Dir
	if dir == "" {
		dir = "."
	}

	loaded, err := config.LoadConfig(dir)
	if err != nil {
		initErr = err
		return
	}
	if overrides.DBPath != "" {
		loaded.DBPath = overrides.DBPath
	}
	if overrides.LogLevel != "" {
		loaded.LogLevel = overrides.LogLevel
	}
	if overrides.SeedSize > 0 {
		loaded.SeedSize = overrides.SeedSize
	}
	if overrides.RandSeed != 0 {
		loaded.RandSeed = overrides.RandSeed
	}
	cfg = loaded

	logger, err = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		initErr = err
		return
	}

	database, err = db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		initErr = fmt.Errorf("failed to initialize database: %w", err)
		return
	}

	epoch, _ := cfg.Epoch() // validated by LoadConfig
	var rng *rand.Rand
	if cfg.RandSeed != 0 {
		rng = rand.New(rand.NewPCG(cfg.RandSeed, cfg.RandSeed))
	}

	// Create adapters (secondary ports) with the injected DB
	caseRepo := sqlite.NewCaseRepository(database)
	reportWriter := csvreport.NewWriter()

	// Create services (primary ports implementation)
	caseService = app.NewCaseService(caseRepo, reportWriter, app.CaseServiceOptions{
		Logger:        logger,
		SeedSize:      cfg.SeedSize,
		Epoch:         epoch,
		Rand:          rng,
		CorruptPolicy: cfg.CorruptPolicy,
	})
}
