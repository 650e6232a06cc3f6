package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// WeekDays lists the canonical day names in Monday-first order, the order the
// weekly schedule is stored and rendered in.
var WeekDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var dayIndex = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

var ErrUnknownDay = errors.New("unknown day name")

// DayNameToIndex maps a lowercase day name to a calendar-grid day index with
// Sunday=0. Unknown names fall back to 0 rather than failing; callers at a
// validated boundary should use DayNameToIndexStrict instead.
func DayNameToIndex(name string) int {
	return dayIndex[name]
}

// DayNameToIndexStrict is the fail-loud variant of DayNameToIndex.
func DayNameToIndexStrict(name string) (int, error) {
	idx, ok := dayIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDay, name)
	}
	return idx, nil
}

// DayNameForDate returns the lowercase day name of a calendar date.
func DayNameForDate(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
