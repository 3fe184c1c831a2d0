package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"time-tracking-assistant/internal/model"
	repo "time-tracking-assistant/internal/tracker/repository"
)

// CreateEntry inserts a new open entry and returns it.
func (r *implRepository) CreateEntry(ctx context.Context, opt repo.CreateEntryOptions) (model.TimeEntry, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return model.TimeEntry{}, err
	}

	query := fmt.Sprintf(`
		INSERT INTO time_entries (owner_id, owner_name, description, start_time)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, entryColumns)

	row := r.db.QueryRowContext(ctx, query,
		nullString(opt.Scope.UserID), nullString(opt.Scope.Username), opt.Description, opt.StartTime)
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

	query, args := buildCloseQuery(opt.Scope, opt.Description, opt.EndTime)
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
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

	query, args := buildListOpenQuery(opt.Scope)
	return r.queryEntries(ctx, "ListOpenEntries", query, args)
}

func (r *implRepository) queryEntries(ctx context.Context, method, query string, args []any) ([]model.TimeEntry, error) {
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
