package usecase

import (
	"context"
	"fmt"
	"time"

	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	repo "time-tracking-assistant/internal/tracker/repository"
)

// Status lists the owner's running tasks, oldest first.
func (uc *implUseCase) Status(ctx context.Context, scope model.Scope) (tracker.StatusOutput, error) {
	now := uc.now()
	tasks, err := uc.activeTasks(ctx, scope, now)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Status activeTasks: %v", err)
		return tracker.StatusOutput{}, fmt.Errorf("%w: %v", tracker.ErrStorage, err)
	}
	return tracker.StatusOutput{Now: now, Tasks: tasks}, nil
}

// History lists closed entries started within the last input.Days days.
func (uc *implUseCase) History(ctx context.Context, scope model.Scope, input tracker.HistoryInput) (tracker.HistoryOutput, error) {
	days := input.Days
	if days == 0 {
		days = tracker.DefaultHistoryDays
	}
	if days < 1 || days > tracker.MaxHistoryDays {
		return tracker.HistoryOutput{}, tracker.ErrInvalidDays
	}

	entries, err := uc.repo.ListClosedEntries(ctx, repo.ListClosedEntriesOptions{
		Scope: scope,
		Since: uc.dateMath.WindowStart(uc.now(), days),
		Limit: uc.cfg.HistoryLimit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.History ListClosedEntries: %v", err)
		return tracker.HistoryOutput{}, fmt.Errorf("%w: %v", tracker.ErrStorage, err)
	}
	loc := uc.dateMath.Location()
	for i := range entries {
		entries[i] = inLocation(entries[i], loc)
	}
	return tracker.HistoryOutput{Days: days, Entries: entries}, nil
}

func inLocation(e model.TimeEntry, loc *time.Location) model.TimeEntry {
	e.StartTime = e.StartTime.In(loc)
	e.CreatedAt = e.CreatedAt.In(loc)
	if e.EndTime != nil {
		end := e.EndTime.In(loc)
		e.EndTime = &end
	}
	return e
}

// Stats sums today's closed entries per description.
func (uc *implUseCase) Stats(ctx context.Context, scope model.Scope) (tracker.StatsOutput, error) {
	start, end := uc.dateMath.DayBounds(uc.now())

	totals, err := uc.repo.SumDurations(ctx, repo.SumDurationsOptions{
		Scope: scope,
		Since: start,
		Until: end,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Stats SumDurations: %v", err)
		return tracker.StatsOutput{}, fmt.Errorf("%w: %v", tracker.ErrStorage, err)
	}

	out := tracker.StatsOutput{Day: start, Totals: totals}
	for _, t := range totals {
		out.Total += t.Total
	}
	return out, nil
}
