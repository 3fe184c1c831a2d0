// Package sqlite stores time entries in an embedded SQLite database. It backs
// the single-user CLI and runs the repository tests without a server.
package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/log"
)

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time

	mu    sync.Mutex
	ready bool
}

// Open opens (or creates) the database file at path. SQLite serializes
// writers, so the pool is limited to one connection.
func Open(path string) (*sql.DB, error) {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")

	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New creates a new SQLite-backed Repository for the time tracking domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("tracker/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l, now: time.Now}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("tracker/repository/sqlite.%s", method)
}
