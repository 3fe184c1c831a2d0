package sqlite

import (
	"context"

	repo "time-tracking-assistant/internal/tracker/repository"
)

// Times are unix nanoseconds; duration is derived once end_time is set.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id    TEXT,
		owner_name  TEXT,
		description TEXT NOT NULL,
		start_time  INTEGER NOT NULL,
		end_time    INTEGER,
		duration    INTEGER GENERATED ALWAYS AS (end_time - start_time) STORED,
		created_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_owner_id ON time_entries (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_open ON time_entries (owner_id) WHERE end_time IS NULL`,
}

// Migrate creates the table and indexes if they do not exist.
func (r *implRepository) Migrate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.migrateLocked(ctx)
}

// ensureSchema retries schema creation when it failed at startup.
func (r *implRepository) ensureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return nil
	}
	return r.migrateLocked(ctx)
}

func (r *implRepository) migrateLocked(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.l.Errorf(ctx, "%s: %v", r.dsn("Migrate"), err)
			return repo.ErrFailedToMigrate
		}
	}
	r.ready = true
	return nil
}
