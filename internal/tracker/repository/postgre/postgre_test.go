package postgre

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-tracking-assistant/internal/model"
	repo "time-tracking-assistant/internal/tracker/repository"
	"time-tracking-assistant/pkg/log"
)

var (
	telegramUser = model.Scope{UserID: "telegram_42", Username: "ada"}
	t0           = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	entryCols    = []string{"id", "owner_id", "owner_name", "description", "start_time", "end_time", "created_at"}
)

func newMockRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := New(db, log.NewNop()).(*implRepository)
	return r, mock
}

func migrated(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	r, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS time_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, r.Migrate(context.Background()))
	return r, mock
}

func TestNew_PanicsWithoutDB(t *testing.T) {
	assert.Panics(t, func() { New(nil, log.NewNop()) })
}

func TestMigrate_RetriedLazily(t *testing.T) {
	r, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS time_entries").WillReturnError(errors.New("connection refused"))
	err := r.Migrate(ctx)
	require.ErrorIs(t, err, repo.ErrFailedToMigrate)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS time_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO time_entries").
		WithArgs("telegram_42", "ada", "Deep Work", t0).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(int64(1), "telegram_42", "ada", "Deep Work", t0, nil, t0))

	entry, err := r.CreateEntry(ctx, repo.CreateEntryOptions{Scope: telegramUser, Description: "Deep Work", StartTime: t0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.True(t, entry.IsOpen())

	// schema is not re-run once ready
	mock.ExpectQuery("SELECT .* FROM time_entries WHERE owner_id = \\$1 AND end_time IS NULL").
		WithArgs("telegram_42").
		WillReturnRows(sqlmock.NewRows(entryCols))
	_, err = r.ListOpenEntries(ctx, repo.ListOpenEntriesOptions{Scope: telegramUser})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_LocalScopeStoresNull(t *testing.T) {
	r, mock := migrated(t)

	mock.ExpectQuery("INSERT INTO time_entries").
		WithArgs(nil, nil, "Reading", t0).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(int64(7), nil, nil, "Reading", t0, nil, t0))

	entry, err := r.CreateEntry(context.Background(), repo.CreateEntryOptions{Description: "Reading", StartTime: t0})
	require.NoError(t, err)
	assert.Equal(t, "", entry.OwnerID)
	assert.Equal(t, "Reading", entry.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_Failure(t *testing.T) {
	r, mock := migrated(t)

	mock.ExpectQuery("INSERT INTO time_entries").WillReturnError(errors.New("disk full"))

	_, err := r.CreateEntry(context.Background(), repo.CreateEntryOptions{Scope: telegramUser, Description: "x", StartTime: t0})
	require.ErrorIs(t, err, repo.ErrFailedToInsert)
}

func TestCloseLatestEntry(t *testing.T) {
	end := t0.Add(90 * time.Minute)

	t.Run("closes newest match", func(t *testing.T) {
		r, mock := migrated(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE time_entries")).
			WithArgs(end, "telegram_42", "Deep Work").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow(int64(3), "telegram_42", "ada", "Deep Work", t0, end, t0))

		entry, err := r.CloseLatestEntry(context.Background(), repo.CloseLatestEntryOptions{
			Scope: telegramUser, Description: "Deep Work", EndTime: end,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), entry.ID)
		assert.Equal(t, 90*time.Minute, entry.Duration())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match is zero value", func(t *testing.T) {
		r, mock := migrated(t)
		mock.ExpectQuery("UPDATE time_entries").
			WithArgs(end, "Nothing").
			WillReturnRows(sqlmock.NewRows(entryCols))

		entry, err := r.CloseLatestEntry(context.Background(), repo.CloseLatestEntryOptions{
			Description: "Nothing", EndTime: end,
		})
		require.NoError(t, err)
		assert.Zero(t, entry.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage error", func(t *testing.T) {
		r, mock := migrated(t)
		mock.ExpectQuery("UPDATE time_entries").WillReturnError(errors.New("boom"))

		_, err := r.CloseLatestEntry(context.Background(), repo.CloseLatestEntryOptions{
			Scope: telegramUser, Description: "x", EndTime: end,
		})
		require.ErrorIs(t, err, repo.ErrFailedToUpdate)
	})
}

func TestListOpenEntries(t *testing.T) {
	r, mock := migrated(t)

	mock.ExpectQuery("SELECT .* FROM time_entries WHERE owner_id IS NULL AND end_time IS NULL ORDER BY start_time ASC").
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(int64(1), nil, nil, "Email", t0, nil, t0).
			AddRow(int64(2), nil, nil, "Breakfast", t0.Add(time.Minute), nil, t0))

	entries, err := r.ListOpenEntries(context.Background(), repo.ListOpenEntriesOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Email", entries[0].Description)
	assert.Equal(t, "Breakfast", entries[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListClosedEntries(t *testing.T) {
	r, mock := migrated(t)
	since := t0.Add(-24 * time.Hour)
	end := t0.Add(time.Hour)

	mock.ExpectQuery("end_time IS NOT NULL AND start_time >= \\$2 ORDER BY start_time DESC, id DESC LIMIT \\$3").
		WithArgs("telegram_42", since, 10).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(int64(5), "telegram_42", "ada", "Coding", t0, end, t0))

	entries, err := r.ListClosedEntries(context.Background(), repo.ListClosedEntriesOptions{
		Scope: telegramUser, Since: since, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Hour, entries[0].Duration())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumDurations(t *testing.T) {
	r, mock := migrated(t)
	until := t0.Add(24 * time.Hour)

	mock.ExpectQuery("SUM\\(EXTRACT\\(EPOCH FROM duration\\)\\)").
		WithArgs("telegram_42", t0, until).
		WillReturnRows(sqlmock.NewRows([]string{"description", "total_seconds"}).
			AddRow("Coding", 5400.0).
			AddRow("Email", 600.4))

	totals, err := r.SumDurations(context.Background(), repo.SumDurationsOptions{
		Scope: telegramUser, Since: t0, Until: until,
	})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, model.TaskTotal{Description: "Coding", Total: 90 * time.Minute}, totals[0])
	assert.Equal(t, 10*time.Minute, totals[1].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildQueries(t *testing.T) {
	q, args := buildCloseQuery(model.Scope{}, "Foo", t0)
	assert.Contains(t, q, "owner_id IS NULL AND description = $2")
	assert.Len(t, args, 2)

	q, args = buildCloseQuery(telegramUser, "Foo", t0)
	assert.Contains(t, q, "owner_id = $2 AND description = $3")
	assert.Equal(t, []any{t0, "telegram_42", "Foo"}, args)

	q, args = buildListClosedQuery(model.Scope{}, t0, 0)
	assert.NotContains(t, q, "LIMIT")
	assert.Contains(t, q, "start_time >= $1")
	assert.Len(t, args, 1)

	q, _ = buildSumQuery(model.Scope{}, t0, t0)
	assert.Contains(t, q, "start_time >= $1 AND start_time < $2")
}
