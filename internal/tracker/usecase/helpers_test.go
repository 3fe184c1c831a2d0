package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/internal/tracker/repository/sqlite"
	"time-tracking-assistant/internal/tracker/usecase"
	"time-tracking-assistant/pkg/datemath"
	"time-tracking-assistant/pkg/gcalendar"
	"time-tracking-assistant/pkg/llmprovider"
	"time-tracking-assistant/pkg/log"
)

// scriptedLLM answers with queued replies and records every prompt.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	reqs    []*llmprovider.Request
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return nil, errors.New("no scripted reply left")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return &llmprovider.Response{
		Content:      llmprovider.Message{Role: llmprovider.RoleAssistant, Text: reply},
		ProviderName: "scripted",
	}, nil
}

func (s *scriptedLLM) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reqs) == 0 {
		return ""
	}
	return s.reqs[len(s.reqs)-1].Messages[0].Text
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeCalendar records events. When hold is set, CreateEvent signals entered
// and waits for hold to close before answering.
type fakeCalendar struct {
	mu      sync.Mutex
	reqs    []gcalendar.CreateEventRequest
	err     error
	entered chan struct{}
	hold    chan struct{}
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	err, entered, hold := f.err, f.entered, f.hold
	f.mu.Unlock()

	if hold != nil {
		entered <- struct{}{}
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &gcalendar.Event{ID: "evt"}, nil
}

func (f *fakeCalendar) requests() []gcalendar.CreateEventRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gcalendar.CreateEventRequest(nil), f.reqs...)
}

// failingRepo wraps a real repository and fails writes on demand.
type failingRepo struct {
	repository.Repository
	failCreate bool
}

func (f *failingRepo) CreateEntry(ctx context.Context, opt repository.CreateEntryOptions) (model.TimeEntry, error) {
	if f.failCreate {
		return model.TimeEntry{}, repository.ErrFailedToInsert
	}
	return f.Repository.CreateEntry(ctx, opt)
}

type fixture struct {
	repo     repository.Repository
	llm      *scriptedLLM
	clock    *fakeClock
	calendar *fakeCalendar
}

// t0 is 09:00:00 AM UTC.
var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func newSQLiteRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := sqlite.New(db, log.NewNop())
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func newFixture(t *testing.T, structured bool, replies ...string) (*fixture, usecase.Config) {
	t.Helper()
	f := &fixture{
		repo:     newSQLiteRepo(t),
		llm:      &scriptedLLM{replies: replies},
		clock:    &fakeClock{t: t0},
		calendar: &fakeCalendar{},
	}
	cfg := usecase.Config{
		StructuredOutput: structured,
		HistoryLimit:     10,
		CalendarID:       "primary",
		Now:              f.clock.Now,
	}
	return f, cfg
}

func newUseCase(t *testing.T, f *fixture, cfg usecase.Config) tracker.UseCase {
	t.Helper()
	return newUseCaseWith(t, f, f.llm, cfg)
}

func newUseCaseWith(t *testing.T, f *fixture, llm usecase.Generator, cfg usecase.Config) tracker.UseCase {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	return usecase.New(log.NewNop(), f.repo, llm, f.calendar, parser, cfg)
}
