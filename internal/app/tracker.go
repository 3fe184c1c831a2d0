// Package app wires configuration into the tracker domain for the entry points.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"time-tracking-assistant/config"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/internal/tracker/repository/postgre"
	"time-tracking-assistant/internal/tracker/repository/sqlite"
	"time-tracking-assistant/internal/tracker/usecase"
	"time-tracking-assistant/pkg/datemath"
	"time-tracking-assistant/pkg/gcalendar"
	"time-tracking-assistant/pkg/llmprovider"
	"time-tracking-assistant/pkg/log"
)

// Tracker bundles the storage pool and the use case built on it.
type Tracker struct {
	DB        *sql.DB
	Repo      repository.Repository
	UseCase   tracker.UseCase
	Providers []string
}

// Close releases the storage pool.
func (t *Tracker) Close() error {
	return t.DB.Close()
}

// OpenRepository opens the configured database and runs the migration once.
// A failed migration is only logged; the repository retries it lazily.
func OpenRepository(ctx context.Context, cfg *config.Config, l log.Logger) (*sql.DB, repository.Repository, error) {
	var (
		db   *sql.DB
		repo repository.Repository
		err  error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo = sqlite.New(db, l)
		l.Infof(ctx, "Storage: sqlite at %s", cfg.Database.SQLitePath)
	case config.DriverPostgres:
		db, err = postgre.Open(cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, err
		}
		repo = postgre.New(db, l)
		l.Infof(ctx, "Storage: postgres at %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := repo.Migrate(ctx); err != nil {
		l.Warnf(ctx, "Schema migration failed, will retry on first use: %v", err)
	}
	return db, repo, nil
}

// NewTracker builds storage, the provider manager, the optional calendar
// mirror and the use case. Only storage errors are fatal; a missing model
// surfaces as tracker.ErrModelUnavailable on every message.
func NewTracker(ctx context.Context, cfg *config.Config, l log.Logger) (*Tracker, error) {
	db, repo, err := OpenRepository(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	parser, err := datemath.NewParser(cfg.Tracker.Timezone)
	if err != nil {
		l.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Tracker.Timezone, err)
		parser, _ = datemath.NewParser("UTC")
	}

	var (
		llm       usecase.Generator
		providers []string
	)
	manager, err := llmprovider.NewManagerFromConfig(ctx, &cfg.LLM, l)
	if err != nil {
		l.Errorf(ctx, "No language model available, every message will fail: %v", err)
		llm = unavailable{err: err}
	} else {
		llm = manager
		providers = manager.Providers()
		l.Infof(ctx, "LLM providers (by priority): %v", providers)
	}

	uc := usecase.New(l, repo, llm, newCalendar(ctx, cfg.GoogleCalendar, l), parser, usecase.Config{
		StructuredOutput: cfg.Tracker.StructuredOutput,
		Temperature:      cfg.Tracker.Temperature,
		HistoryLimit:     cfg.Tracker.HistoryLimit,
		CalendarID:       cfg.GoogleCalendar.CalendarID,
	})

	return &Tracker{DB: db, Repo: repo, UseCase: uc, Providers: providers}, nil
}

// newCalendar returns nil (not a typed nil) when the mirror is off or broken.
func newCalendar(ctx context.Context, cfg config.GoogleCalendarConfig, l log.Logger) usecase.CalendarMirror {
	if !cfg.Enabled {
		return nil
	}
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		l.Warn(ctx, "Run `go run ./scripts/gcal-auth` to generate the token")
		return nil
	}
	l.Infof(ctx, "Google Calendar mirror enabled (calendar %s)", cfg.CalendarID)
	return client
}

// unavailable stands in for the provider manager when none could be built.
type unavailable struct{ err error }

func (u unavailable) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return nil, fmt.Errorf("%w: %v", llmprovider.ErrAllProvidersFailed, u.err)
}
