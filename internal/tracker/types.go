package tracker

import (
	"time"

	"time-tracking-assistant/internal/assistant"
	"time-tracking-assistant/internal/model"
)

// Result is what the command executor did with the model's command.
type Result string

const (
	ResultStarted  Result = "started"
	ResultStopped  Result = "stopped"
	ResultNoMatch  Result = "no_match" // stop named no running task
	ResultIdle     Result = "idle"
	ResultNotSaved Result = "not_saved"
)

const (
	DefaultHistoryDays = 1
	MaxHistoryDays     = 365
)

// --- UseCase Inputs ---

type TrackInput struct {
	Message string
}

type HistoryInput struct {
	Days int // 0 means DefaultHistoryDays
}

// --- UseCase Outputs ---

type TrackOutput struct {
	Reply   string
	Command assistant.Command
	Result  Result
	Entry   model.TimeEntry // the created or closed entry, zero otherwise
}

// ActiveTask is a running task as shown to the model and in /status.
type ActiveTask struct {
	Description string
	StartTime   time.Time
	Started     string // 12-hour clock
	Elapsed     string // "1 hour, 10 minutes, 22 seconds"
}

type StatusOutput struct {
	Now   time.Time
	Tasks []ActiveTask
}

type HistoryOutput struct {
	Days    int
	Entries []model.TimeEntry
}

type StatsOutput struct {
	Day    time.Time
	Totals []model.TaskTotal
	Total  time.Duration
}
