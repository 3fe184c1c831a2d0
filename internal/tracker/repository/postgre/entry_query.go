package postgre

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"time-tracking-assistant/internal/model"
)

const entryColumns = `id, owner_id, owner_name, description, start_time, end_time, created_at`

// ownerCondition filters by owner. The single-user scope is stored as NULL.
func ownerCondition(scope model.Scope, idx int) (string, []any) {
	if scope.IsLocal() {
		return "owner_id IS NULL", nil
	}
	return fmt.Sprintf("owner_id = $%d", idx), []any{scope.UserID}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// buildCloseQuery targets the most recently started open entry of the owner
// with the given description. The outer end_time check keeps closed rows immutable.
func buildCloseQuery(scope model.Scope, description string, endTime time.Time) (string, []any) {
	args := []any{endTime}
	owner, ownerArgs := ownerCondition(scope, 2)
	args = append(args, ownerArgs...)
	args = append(args, description)

	query := fmt.Sprintf(`
		UPDATE time_entries
		SET end_time = $1
		WHERE id = (
			SELECT id FROM time_entries
			WHERE %s AND description = $%d AND end_time IS NULL
			ORDER BY start_time DESC, id DESC
			LIMIT 1
		) AND end_time IS NULL
		RETURNING %s`, owner, len(args), entryColumns)
	return query, args
}

func buildListOpenQuery(scope model.Scope) (string, []any) {
	owner, args := ownerCondition(scope, 1)
	query := fmt.Sprintf(`SELECT %s FROM time_entries WHERE %s AND end_time IS NULL ORDER BY start_time ASC, id ASC`,
		entryColumns, owner)
	return query, args
}

func buildListClosedQuery(scope model.Scope, since time.Time, limit int) (string, []any) {
	owner, args := ownerCondition(scope, 1)
	args = append(args, since)
	parts := []string{
		fmt.Sprintf("SELECT %s FROM time_entries", entryColumns),
		fmt.Sprintf("WHERE %s AND end_time IS NOT NULL AND start_time >= $%d", owner, len(args)),
		"ORDER BY start_time DESC, id DESC",
	}
	if limit > 0 {
		args = append(args, limit)
		parts = append(parts, fmt.Sprintf("LIMIT $%d", len(args)))
	}
	return strings.Join(parts, " "), args
}

func buildSumQuery(scope model.Scope, since, until time.Time) (string, []any) {
	owner, args := ownerCondition(scope, 1)
	args = append(args, since, until)
	query := fmt.Sprintf(`
		SELECT description, COALESCE(SUM(EXTRACT(EPOCH FROM duration)), 0) AS total_seconds
		FROM time_entries
		WHERE %s AND end_time IS NOT NULL AND start_time >= $%d AND start_time < $%d
		GROUP BY description
		ORDER BY total_seconds DESC, description ASC`, owner, len(args)-1, len(args))
	return query, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (model.TimeEntry, error) {
	var (
		e         model.TimeEntry
		ownerID   sql.NullString
		ownerName sql.NullString
		endTime   sql.NullTime
	)
	if err := s.Scan(&e.ID, &ownerID, &ownerName, &e.Description, &e.StartTime, &endTime, &e.CreatedAt); err != nil {
		return model.TimeEntry{}, err
	}
	e.OwnerID = ownerID.String
	e.OwnerName = ownerName.String
	if endTime.Valid {
		t := endTime.Time
		e.EndTime = &t
	}
	return e, nil
}
