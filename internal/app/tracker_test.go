package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-tracking-assistant/config"
	"time-tracking-assistant/internal/app"
	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/log"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "t.db")},
		Tracker:  config.TrackerConfig{Timezone: "UTC", StructuredOutput: true, HistoryLimit: 10},
	}
}

func TestNewTracker_WithoutProviders(t *testing.T) {
	ctx := context.Background()
	tr, err := app.NewTracker(ctx, sqliteConfig(t), log.NewNop())
	require.NoError(t, err)
	defer tr.Close()

	assert.Empty(t, tr.Providers)
	require.NoError(t, tr.DB.PingContext(ctx))

	_, err = tr.UseCase.Track(ctx, model.Scope{}, tracker.TrackInput{Message: "start coding"})
	assert.True(t, errors.Is(err, tracker.ErrModelUnavailable), "got %v", err)

	status, err := tr.UseCase.Status(ctx, model.Scope{})
	require.NoError(t, err)
	assert.Empty(t, status.Tasks)
}

func TestNewTracker_BadTimezoneFallsBack(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Tracker.Timezone = "Mars/Olympus_Mons"

	tr, err := app.NewTracker(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer tr.Close()

	out, err := tr.UseCase.Stats(context.Background(), model.Scope{})
	require.NoError(t, err)
	assert.Equal(t, "UTC", out.Day.Location().String())
}

func TestOpenRepository_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Driver = "mysql"

	_, _, err := app.OpenRepository(context.Background(), cfg, log.NewNop())
	assert.Error(t, err)
}
