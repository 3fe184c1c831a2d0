package datemath_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"time-tracking-assistant/pkg/datemath"
)

func TestFormatElapsed(t *testing.T) {
	start := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "zero", elapsed: 0, want: "0 seconds"},
		{name: "sub-second truncates", elapsed: 900 * time.Millisecond, want: "0 seconds"},
		{name: "one second", elapsed: time.Second, want: "1 second"},
		{name: "seconds only", elapsed: 48 * time.Second, want: "48 seconds"},
		{name: "one minute exactly", elapsed: time.Minute, want: "1 minute"},
		{name: "minutes and seconds", elapsed: 32*time.Minute + 48*time.Second, want: "32 minutes, 48 seconds"},
		{name: "hour and seconds", elapsed: time.Hour + 5*time.Second, want: "1 hour, 5 seconds"},
		{name: "all components", elapsed: time.Hour + 10*time.Minute + 22*time.Second, want: "1 hour, 10 minutes, 22 seconds"},
		{name: "many hours", elapsed: 26 * time.Hour, want: "26 hours"},
		{name: "negative clamps", elapsed: -5 * time.Second, want: "0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := datemath.FormatElapsed(start, start.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("FormatElapsed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatElapsed_ComponentPresence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		secs := rng.Int63n(3 * 24 * 3600)
		got := datemath.FormatElapsed(start, start.Add(time.Duration(secs)*time.Second))

		h, m, s := secs/3600, (secs%3600)/60, secs%60
		hasHour := strings.Contains(got, "hour")
		hasMinute := strings.Contains(got, "minute")
		hasSecond := strings.Contains(got, "second")

		if hasHour != (h > 0) {
			t.Fatalf("%ds -> %q: hour presence mismatch", secs, got)
		}
		if hasMinute != (m > 0) {
			t.Fatalf("%ds -> %q: minute presence mismatch", secs, got)
		}
		if hasSecond != (s > 0 || (h == 0 && m == 0)) {
			t.Fatalf("%ds -> %q: second presence mismatch", secs, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 10, 22, 0, time.UTC)
	if got := datemath.FormatClock(ts); got != "12:10:22 PM" {
		t.Errorf("FormatClock() = %q", got)
	}
	ts = time.Date(2024, 5, 1, 9, 0, 34, 0, time.UTC)
	if got := datemath.FormatClock(ts); got != "09:00:34 AM" {
		t.Errorf("FormatClock() = %q", got)
	}
}

func TestFormatHoursMinutesAndStopwatch(t *testing.T) {
	d := 2*time.Hour + 5*time.Minute + 59*time.Second
	if got := datemath.FormatHoursMinutes(d); got != "2h 5m" {
		t.Errorf("FormatHoursMinutes() = %q", got)
	}
	if got := datemath.FormatStopwatch(d); got != "2:05:59" {
		t.Errorf("FormatStopwatch() = %q", got)
	}
	if got := datemath.FormatStopwatch(-time.Minute); got != "0:00:00" {
		t.Errorf("FormatStopwatch(negative) = %q", got)
	}
}
