package model

import "time"

// TimeEntry is one occurrence of a tracked task. An entry with a nil EndTime
// is open (running); once EndTime is set the entry is never modified again.
type TimeEntry struct {
	ID          int64
	OwnerID     string // empty for the single-user CLI
	OwnerName   string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	CreatedAt   time.Time
}

// IsOpen reports whether the entry is still running.
func (e TimeEntry) IsOpen() bool {
	return e.EndTime == nil
}

// Duration returns EndTime - StartTime for closed entries and 0 for open ones.
func (e TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// TaskTotal is the summed duration of all closed entries sharing a description.
type TaskTotal struct {
	Description string
	Total       time.Duration
}
