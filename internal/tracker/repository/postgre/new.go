package postgre

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger

	mu    sync.Mutex
	ready bool
}

// Open creates a connection pool for dsn. No connection is made until first use.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// New creates a new PostgreSQL-backed Repository for the time tracking domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("tracker/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("tracker/repository/postgre.%s", method)
}
