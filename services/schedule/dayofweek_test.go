package schedule

import (
	"testing"
	"time"
)

func TestDayNameToIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"sunday", 0},
		{"monday", 1},
		{"tuesday", 2},
		{"wednesday", 3},
		{"thursday", 4},
		{"friday", 5},
		{"saturday", 6},
		{"not-a-day", 0}, // lenient fallback to Sunday
		{"", 0},
	}
	for _, tt := range tests {
		if got := DayNameToIndex(tt.name); got != tt.want {
			t.Errorf("DayNameToIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDayNameToIndexStrict(t *testing.T) {
	if _, err := DayNameToIndexStrict("friday"); err != nil {
		t.Fatalf("unexpected error for valid day: %v", err)
	}
	if _, err := DayNameToIndexStrict("Friday"); err == nil {
		t.Error("expected error for capitalized day name")
	}
	if _, err := DayNameToIndexStrict("someday"); err == nil {
		t.Error("expected error for unknown day name")
	}
}

func TestDayNameForDate(t *testing.T) {
	// 2024-12-25 is a Wednesday.
	d := time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local)
	if got := DayNameForDate(d); got != "wednesday" {
		t.Errorf("DayNameForDate = %q, want wednesday", got)
	}
}
