package usecase

import (
	"context"
	"sort"
	"time"

	"time-tracking-assistant/internal/assistant"
	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	repo "time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/datemath"
)

// activeTasks reads the owner's open entries and collapses them by
// description. Entries arrive oldest first, so the most recently started
// entry of a duplicated description wins.
func (uc *implUseCase) activeTasks(ctx context.Context, scope model.Scope, now time.Time) ([]tracker.ActiveTask, error) {
	entries, err := uc.repo.ListOpenEntries(ctx, repo.ListOpenEntriesOptions{Scope: scope})
	if err != nil {
		return nil, err
	}

	latest := make(map[string]model.TimeEntry, len(entries))
	for _, e := range entries {
		latest[e.Description] = e
	}

	tasks := make([]tracker.ActiveTask, 0, len(latest))
	for _, e := range latest {
		start := e.StartTime.In(now.Location())
		tasks = append(tasks, tracker.ActiveTask{
			Description: e.Description,
			StartTime:   start,
			Started:     datemath.FormatClock(start),
			Elapsed:     datemath.FormatElapsed(start, now),
		})
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].StartTime.Equal(tasks[j].StartTime) {
			return tasks[i].StartTime.Before(tasks[j].StartTime)
		}
		return tasks[i].Description < tasks[j].Description
	})
	return tasks, nil
}

// promptTasks converts active tasks into the map embedded in the prompt.
func promptTasks(tasks []tracker.ActiveTask) map[string]assistant.ActiveTask {
	m := make(map[string]assistant.ActiveTask, len(tasks))
	for _, t := range tasks {
		m[t.Description] = assistant.ActiveTask{StartTime: t.Started, Duration: t.Elapsed}
	}
	return m
}
