package repository

import (
	"time"

	"time-tracking-assistant/internal/model"
)

// CreateEntryOptions holds parameters for inserting a new open entry.
type CreateEntryOptions struct {
	Scope       model.Scope
	Description string
	StartTime   time.Time
}

// CloseLatestEntryOptions holds parameters for closing an open entry.
type CloseLatestEntryOptions struct {
	Scope       model.Scope
	Description string
	EndTime     time.Time
}

type ListOpenEntriesOptions struct {
	Scope model.Scope
}

// ListClosedEntriesOptions holds filter and limit for the history query.
type ListClosedEntriesOptions struct {
	Scope model.Scope
	Since time.Time
	Limit int // 0 means no limit
}

// SumDurationsOptions selects closed entries with Since <= start_time < Until.
type SumDurationsOptions struct {
	Scope model.Scope
	Since time.Time
	Until time.Time
}
