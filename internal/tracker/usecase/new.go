package usecase

import (
	"context"
	"time"

	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/datemath"
	"time-tracking-assistant/pkg/gcalendar"
	"time-tracking-assistant/pkg/keylock"
	"time-tracking-assistant/pkg/llmprovider"
	pkgLog "time-tracking-assistant/pkg/log"
)

// Generator produces model replies. *llmprovider.Manager satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// CalendarMirror receives closed entries. *gcalendar.Client satisfies it.
type CalendarMirror interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Config tunes the use case.
type Config struct {
	StructuredOutput bool
	Temperature      float64
	HistoryLimit     int
	CalendarID       string

	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	llm      Generator
	calendar CalendarMirror
	dateMath *datemath.Parser
	locks    *keylock.Locker
	cfg      Config
}

var _ tracker.UseCase = (*implUseCase)(nil)

// New creates a new tracker UseCase instance. calendar may be nil.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	llm Generator,
	calendar CalendarMirror,
	dateMath *datemath.Parser,
	cfg Config,
) *implUseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		llm:      llm,
		calendar: calendar,
		dateMath: dateMath,
		locks:    keylock.New(),
		cfg:      cfg,
	}
}

func (uc *implUseCase) now() time.Time {
	return uc.cfg.Now().In(uc.dateMath.Location())
}
