package datemath

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for minimal container images
)

// Parser resolves report windows (today, last N days) in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new parser for the given IANA timezone string.
// "Local" and "" resolve to the process timezone.
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" {
		timezone = "Local"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// StartOfDay returns midnight at the start of t's day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// DayBounds returns [start, end) of t's calendar day.
func (p *Parser) DayBounds(t time.Time) (time.Time, time.Time) {
	start := p.StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// WindowStart returns the instant `days` whole days before now.
// This is a rolling window, not aligned to midnight.
func (p *Parser) WindowStart(now time.Time, days int) time.Time {
	return now.In(p.location).Add(-time.Duration(days) * 24 * time.Hour)
}
