package http

import (
	"errors"
	"strings"
	"time"

	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/datemath"
	"time-tracking-assistant/pkg/response"
)

// --- Request DTOs ---

type trackReq struct {
	Message string `json:"message" binding:"required,max=4000"`

	scope model.Scope
}

func (r trackReq) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return tracker.ErrEmptyMessage
	}
	return nil
}

func (r trackReq) toInput() tracker.TrackInput {
	return tracker.TrackInput{Message: r.Message}
}

type historyReq struct {
	// Days is nil when the query omits it; an explicit value must be in range.
	Days *int `form:"days"`

	scope model.Scope
}

func (r historyReq) validate() error {
	if r.Days != nil && (*r.Days < 1 || *r.Days > tracker.MaxHistoryDays) {
		return tracker.ErrInvalidDays
	}
	return nil
}

func (r historyReq) toInput() tracker.HistoryInput {
	if r.Days == nil {
		return tracker.HistoryInput{}
	}
	return tracker.HistoryInput{Days: *r.Days}
}

// --- Response DTOs ---

type entryResp struct {
	ID              int64              `json:"id"`
	Description     string             `json:"description"`
	StartTime       response.DateTime  `json:"start_time"`
	EndTime         *response.DateTime `json:"end_time"`
	DurationSeconds int64              `json:"duration_seconds"`
	Duration        string             `json:"duration"`
}

func newEntryResp(e model.TimeEntry) entryResp {
	return entryResp{
		ID:              e.ID,
		Description:     e.Description,
		StartTime:       response.DateTime(e.StartTime),
		EndTime:         response.NullableDateTime(e.EndTime),
		DurationSeconds: int64(e.Duration() / time.Second),
		Duration:        datemath.FormatStopwatch(e.Duration()),
	}
}

type commandResp struct {
	Action string `json:"action"`
	Task   string `json:"task,omitempty"`
}

type trackResp struct {
	Reply   string      `json:"reply"`
	Command commandResp `json:"command"`
	Result  string      `json:"result"`
	Entry   *entryResp  `json:"entry,omitempty"`
}

func (h *handler) newTrackResp(out tracker.TrackOutput) trackResp {
	resp := trackResp{
		Reply:   out.Reply,
		Command: commandResp{Action: string(out.Command.Verb), Task: out.Command.Task},
		Result:  string(out.Result),
	}
	if out.Entry.ID != 0 {
		e := newEntryResp(out.Entry)
		resp.Entry = &e
	}
	return resp
}

type activeTaskResp struct {
	Description string            `json:"description"`
	StartTime   response.DateTime `json:"start_time"`
	Started     string            `json:"started"`
	Elapsed     string            `json:"elapsed"`
}

type statusResp struct {
	Now   response.DateTime `json:"now"`
	Tasks []activeTaskResp  `json:"tasks"`
}

func (h *handler) newStatusResp(out tracker.StatusOutput) statusResp {
	tasks := make([]activeTaskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = activeTaskResp{
			Description: t.Description,
			StartTime:   response.DateTime(t.StartTime),
			Started:     t.Started,
			Elapsed:     t.Elapsed,
		}
	}
	return statusResp{Now: response.DateTime(out.Now), Tasks: tasks}
}

type historyResp struct {
	Days    int         `json:"days"`
	Entries []entryResp `json:"entries"`
}

func (h *handler) newHistoryResp(out tracker.HistoryOutput) historyResp {
	entries := make([]entryResp, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = newEntryResp(e)
	}
	return historyResp{Days: out.Days, Entries: entries}
}

type taskTotalResp struct {
	Description  string `json:"description"`
	TotalSeconds int64  `json:"total_seconds"`
	Total        string `json:"total"`
}

type statsResp struct {
	Day          response.Date   `json:"day"`
	Totals       []taskTotalResp `json:"totals"`
	TotalSeconds int64           `json:"total_seconds"`
	Total        string          `json:"total"`
}

func (h *handler) newStatsResp(out tracker.StatsOutput) statsResp {
	totals := make([]taskTotalResp, len(out.Totals))
	for i, t := range out.Totals {
		totals[i] = taskTotalResp{
			Description:  t.Description,
			TotalSeconds: int64(t.Total / time.Second),
			Total:        datemath.FormatHoursMinutes(t.Total),
		}
	}
	return statsResp{
		Day:          response.Date(out.Day),
		Totals:       totals,
		TotalSeconds: int64(out.Total / time.Second),
		Total:        datemath.FormatHoursMinutes(out.Total),
	}
}

// isClientError reports errors caused by the request itself.
func isClientError(err error) bool {
	return errors.Is(err, tracker.ErrEmptyMessage) || errors.Is(err, tracker.ErrInvalidDays)
}
