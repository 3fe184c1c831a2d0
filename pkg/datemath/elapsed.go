package datemath

import (
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the 12-hour clock with seconds, e.g. "03:04:05 PM".
const ClockLayout = "03:04:05 PM"

// FormatClock renders t as a 12-hour clock with seconds.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatElapsed renders the span between start and now as
// "1 hour, 10 minutes, 22 seconds". Zero components are skipped, except that
// seconds are always present when nothing else is. Sub-second remainders are
// truncated and negative spans render as "0 seconds".
func FormatElapsed(start, now time.Time) string {
	return FormatDuration(now.Sub(start))
}

// FormatDuration is FormatElapsed for an already computed duration.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, plural(seconds, "second"))
	}
	return strings.Join(parts, ", ")
}

// FormatHoursMinutes renders d as "2h 5m", dropping seconds.
func FormatHoursMinutes(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// FormatStopwatch renders d as "H:MM:SS".
func FormatStopwatch(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
