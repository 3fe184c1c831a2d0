package sqlite

import (
	"context"
	"time"

	"time-tracking-assistant/internal/model"
	repo "time-tracking-assistant/internal/tracker/repository"
)

// ListClosedEntries returns closed entries started since opt.Since, newest first.
func (r *implRepository) ListClosedEntries(ctx context.Context, opt repo.ListClosedEntriesOptions) ([]model.TimeEntry, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	limit := opt.Limit
	if limit <= 0 {
		limit = -1 // no limit
	}

	const query = `SELECT ` + entryColumns + ` FROM time_entries
		WHERE owner_id IS ? AND end_time IS NOT NULL AND start_time >= ?
		ORDER BY start_time DESC, id DESC
		LIMIT ?`
	return r.queryEntries(ctx, "ListClosedEntries", query, ownerArg(opt.Scope), toUnix(opt.Since), limit)
}

// SumDurations totals closed entries per description within [Since, Until).
func (r *implRepository) SumDurations(ctx context.Context, opt repo.SumDurationsOptions) ([]model.TaskTotal, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `
		SELECT description, SUM(duration) AS total
		FROM time_entries
		WHERE owner_id IS ? AND end_time IS NOT NULL AND start_time >= ? AND start_time < ?
		GROUP BY description
		ORDER BY total DESC, description ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerArg(opt.Scope), toUnix(opt.Since), toUnix(opt.Until))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SumDurations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var totals []model.TaskTotal
	for rows.Next() {
		var (
			description string
			nanos       int64
		)
		if err := rows.Scan(&description, &nanos); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("SumDurations"), err)
			return nil, repo.ErrFailedToList
		}
		totals = append(totals, model.TaskTotal{Description: description, Total: time.Duration(nanos)})
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("SumDurations"), err)
		return nil, repo.ErrFailedToList
	}
	return totals, nil
}
