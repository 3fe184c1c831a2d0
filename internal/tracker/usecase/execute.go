package usecase

import (
	"context"
	"strconv"
	"time"

	"time-tracking-assistant/internal/assistant"
	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	repo "time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/gcalendar"
)

const mirrorTimeout = 10 * time.Second

// execute applies a command to storage. A failed command is not retried.
func (uc *implUseCase) execute(ctx context.Context, scope model.Scope, cmd assistant.Command, now time.Time) (tracker.Result, model.TimeEntry, error) {
	switch cmd.Verb {
	case assistant.VerbStart:
		entry, err := uc.repo.CreateEntry(ctx, repo.CreateEntryOptions{
			Scope:       scope,
			Description: cmd.Task,
			StartTime:   now,
		})
		if err != nil {
			uc.l.Errorf(ctx, "uc.execute CreateEntry: %v", err)
			return tracker.ResultNotSaved, model.TimeEntry{}, err
		}
		return tracker.ResultStarted, entry, nil

	case assistant.VerbStop:
		entry, err := uc.repo.CloseLatestEntry(ctx, repo.CloseLatestEntryOptions{
			Scope:       scope,
			Description: cmd.Task,
			EndTime:     now,
		})
		if err != nil {
			uc.l.Errorf(ctx, "uc.execute CloseLatestEntry: %v", err)
			return tracker.ResultNotSaved, model.TimeEntry{}, err
		}
		if entry.ID == 0 {
			uc.l.Infof(ctx, "uc.execute: no running task named %q for owner %q", cmd.Task, scope.UserID)
			return tracker.ResultNoMatch, model.TimeEntry{}, nil
		}
		return tracker.ResultStopped, entry, nil

	default:
		return tracker.ResultIdle, model.TimeEntry{}, nil
	}
}

// mirror copies a closed entry to Google Calendar. Failures are only logged.
// Track calls it after releasing the owner's lock.
func (uc *implUseCase) mirror(ctx context.Context, entry model.TimeEntry) {
	if uc.calendar == nil || entry.EndTime == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	loc := uc.dateMath.Location()
	tz := loc.String()
	if loc == time.Local {
		// Calendar rejects "Local"; the RFC 3339 offset is enough.
		tz = ""
	}
	_, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.cfg.CalendarID,
		Summary:     entry.Description,
		Description: "Tracked by the time tracking assistant.",
		StartTime:   entry.StartTime.In(loc),
		EndTime:     entry.EndTime.In(loc),
		Timezone:    tz,
		Properties:  map[string]string{"time_entry_id": strconv.FormatInt(entry.ID, 10)},
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.mirror CreateEvent entry=%d: %v", entry.ID, err)
	}
}
