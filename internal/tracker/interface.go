package tracker

import (
	"context"

	"time-tracking-assistant/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Track runs one conversational turn: context, model, command, storage.
	Track(ctx context.Context, scope model.Scope, input TrackInput) (TrackOutput, error)

	// Reports
	Status(ctx context.Context, scope model.Scope) (StatusOutput, error)
	History(ctx context.Context, scope model.Scope, input HistoryInput) (HistoryOutput, error)
	Stats(ctx context.Context, scope model.Scope) (StatsOutput, error)
}
