package postgre

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

	query, args := buildListClosedQuery(opt.Scope, opt.Since, opt.Limit)
	return r.queryEntries(ctx, "ListClosedEntries", query, args)
}

// SumDurations totals closed entries per description within [Since, Until).
func (r *implRepository) SumDurations(ctx context.Context, opt repo.SumDurationsOptions) ([]model.TaskTotal, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query, args := buildSumQuery(opt.Scope, opt.Since, opt.Until)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SumDurations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var totals []model.TaskTotal
	for rows.Next() {
		var (
			description string
			seconds     float64
		)
		if err := rows.Scan(&description, &seconds); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("SumDurations"), err)
			return nil, repo.ErrFailedToList
		}
		totals = append(totals, model.TaskTotal{
			Description: description,
			Total:       time.Duration(seconds * float64(time.Second)).Round(time.Second),
		})
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("SumDurations"), err)
		return nil, repo.ErrFailedToList
	}
	return totals, nil
}
