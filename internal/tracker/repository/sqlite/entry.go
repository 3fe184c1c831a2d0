package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"time-tracking-assistant/internal/model"
	repo "time-tracking-assistant/internal/tracker/repository"
)

const entryColumns = `id, owner_id, owner_name, description, start_time, end_time, created_at`

// ownerArg binds to "owner_id IS ?", which matches NULL for the local scope.
func ownerArg(scope model.Scope) any {
	if scope.IsLocal() {
		return nil
	}
	return scope.UserID
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func toUnix(t time.Time) int64 { return t.UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n) }

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (model.TimeEntry, error) {
	var (
		e         model.TimeEntry
		ownerID   sql.NullString
		ownerName sql.NullString
		start     int64
		end       sql.NullInt64
		created   int64
	)
	if err := s.Scan(&e.ID, &ownerID, &ownerName, &e.Description, &start, &end, &created); err != nil {
		return model.TimeEntry{}, err
	}
	e.OwnerID = ownerID.String
	e.OwnerName = ownerName.String
	e.StartTime = fromUnix(start)
	e.CreatedAt = fromUnix(created)
	if end.Valid {
		t := fromUnix(end.Int64)
		e.EndTime = &t
	}
	return e, nil
}

// CreateEntry inserts a new open entry and returns it.
func (r *implRepository) CreateEntry(ctx context.Context, opt repo.CreateEntryOptions) (model.TimeEntry, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return model.TimeEntry{}, err
	}

	const query = `
		INSERT INTO time_entries (owner_id, owner_name, description, start_time, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + entryColumns

	row := r.db.QueryRowContext(ctx, query,
		nullable(opt.Scope.UserID), nullable(opt.Scope.Username), opt.Description,
		toUnix(opt.StartTime), toUnix(r.now()))
	entry, err := scanEntry(row)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateEntry"), err)
		return model.TimeEntry{}, repo.ErrFailedToInsert
	}
	return entry, nil
}

// CloseLatestEntry closes the newest open entry matching the description.
// Returns zero-value entry when no open entry matched.
func (r *implRepository) CloseLatestEntry(ctx context.Context, opt repo.CloseLatestEntryOptions) (model.TimeEntry, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return model.TimeEntry{}, err
	}

	const query = `
		UPDATE time_entries
		SET end_time = ?
		WHERE id = (
			SELECT id FROM time_entries
			WHERE owner_id IS ? AND description = ? AND end_time IS NULL
			ORDER BY start_time DESC, id DESC
			LIMIT 1
		) AND end_time IS NULL
		RETURNING ` + entryColumns

	row := r.db.QueryRowContext(ctx, query, toUnix(opt.EndTime), ownerArg(opt.Scope), opt.Description)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeEntry{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CloseLatestEntry"), err)
		return model.TimeEntry{}, repo.ErrFailedToUpdate
	}
	return entry, nil
}

// ListOpenEntries returns the owner's running entries, oldest first.
func (r *implRepository) ListOpenEntries(ctx context.Context, opt repo.ListOpenEntriesOptions) ([]model.TimeEntry, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `SELECT ` + entryColumns + ` FROM time_entries
		WHERE owner_id IS ? AND end_time IS NULL
		ORDER BY start_time ASC, id ASC`
	return r.queryEntries(ctx, "ListOpenEntries", query, ownerArg(opt.Scope))
}

func (r *implRepository) queryEntries(ctx context.Context, method, query string, args ...any) ([]model.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var entries []model.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn(method), err)
			return nil, repo.ErrFailedToList
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn(method), err)
		return nil, repo.ErrFailedToList
	}
	return entries, nil
}
