package datemath_test

import (
	"testing"
	"time"

	"time-tracking-assistant/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	if _, err := datemath.NewParser("Asia/Ho_Chi_Minh"); err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}
	if _, err := datemath.NewParser(""); err != nil {
		t.Fatalf("empty timezone should resolve to Local: %v", err)
	}
	if _, err := datemath.NewParser("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestStartOfDayAndBounds(t *testing.T) {
	parser, _ := datemath.NewParser("Asia/Ho_Chi_Minh") // UTC+7
	// 20:30 UTC is already the next day in UTC+7.
	base := time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)

	start := parser.StartOfDay(base)
	if start.Day() != 2 || start.Hour() != 0 {
		t.Errorf("StartOfDay() = %v, want May 2 00:00 local", start)
	}

	from, to := parser.DayBounds(base)
	if !from.Equal(start) {
		t.Errorf("DayBounds() start = %v, want %v", from, start)
	}
	if to.Sub(from) != 24*time.Hour {
		t.Errorf("DayBounds() span = %v, want 24h", to.Sub(from))
	}
}

func TestWindowStart(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		days int
		want time.Time
	}{
		{days: 1, want: time.Date(2024, 5, 9, 15, 30, 0, 0, time.UTC)},
		{days: 7, want: time.Date(2024, 5, 3, 15, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := parser.WindowStart(now, tt.days); !got.Equal(tt.want) {
			t.Errorf("WindowStart(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}
