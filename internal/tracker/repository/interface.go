package repository

import (
	"context"

	"time-tracking-assistant/internal/model"
)

// Repository is the composed interface for the time tracking data store.
type Repository interface {
	Migrate(ctx context.Context) error
	EntryRepository
	ReportRepository
}

// EntryRepository covers the writes issued by the command executor and the
// open-entry read used to build the model context.
type EntryRepository interface {
	// CreateEntry inserts a new open entry.
	CreateEntry(ctx context.Context, opt CreateEntryOptions) (model.TimeEntry, error)
	// CloseLatestEntry sets the end time of the most recently started open
	// entry with a matching description. Returns a zero-value entry (ID == 0)
	// when nothing matched.
	CloseLatestEntry(ctx context.Context, opt CloseLatestEntryOptions) (model.TimeEntry, error)
	// ListOpenEntries returns open entries ordered by start time ascending.
	ListOpenEntries(ctx context.Context, opt ListOpenEntriesOptions) ([]model.TimeEntry, error)
}

// ReportRepository covers the read-only history and statistics queries.
type ReportRepository interface {
	// ListClosedEntries returns closed entries started at or after Since,
	// newest first.
	ListClosedEntries(ctx context.Context, opt ListClosedEntriesOptions) ([]model.TimeEntry, error)
	// SumDurations totals closed entries per description, largest first.
	SumDurations(ctx context.Context, opt SumDurationsOptions) ([]model.TaskTotal, error)
}
