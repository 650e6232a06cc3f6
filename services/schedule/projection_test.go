package schedule

import (
	"reflect"
	"testing"
	"time"

	"drivebook/models"
)

// 2024-12-23 is a Monday.
var (
	monday  = time.Date(2024, 12, 23, 0, 0, 0, 0, time.Local)
	farPast = time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)
)

func mondayWeekly() []models.DayAvailability {
	return NormalizeWeekly([]models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "09:00", End: "17:00"}}},
	})
}

func lessonAt(date time.Time, startHour, endHour int) models.Lesson {
	return models.Lesson{
		ID:           "l1",
		InstructorID: "i1",
		Date:         date.Format("2006-01-02"),
		StartTime:    time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.Local),
		EndTime:      time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, time.Local),
		Status:       models.LessonStatusScheduled,
	}
}

func slotStarts(slots []models.BookableSlot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func TestComputeAvailableSlotsExcludesBookedLesson(t *testing.T) {
	lessons := []models.Lesson{lessonAt(monday, 10, 11)}

	slots, skipped := ComputeAvailableSlots(monday, monday, mondayWeekly(), nil, lessons, 60, farPast)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped entries: %v", skipped)
	}

	want := []string{"09:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if got := slotStarts(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slot starts = %v, want %v", got, want)
	}
	for _, s := range slots {
		if s.Date != "2024-12-23" {
			t.Errorf("slot on wrong date: %+v", s)
		}
	}
}

func TestComputeAvailableSlotsNeverOverlapsLessons(t *testing.T) {
	lessons := []models.Lesson{
		lessonAt(monday, 9, 10),
		lessonAt(monday, 12, 14),
		lessonAt(monday, 16, 17),
	}

	slots, _ := ComputeAvailableSlots(monday, monday, mondayWeekly(), nil, lessons, 60, farPast)
	for _, s := range slots {
		sStart, _ := ParseClock(s.StartTime)
		sEnd, _ := ParseClock(s.EndTime)
		for _, l := range lessons {
			lStart := minutesIntoDay(monday, l.StartTime)
			lEnd := minutesIntoDay(monday, l.EndTime)
			if sStart < lEnd && lStart < sEnd {
				t.Errorf("slot %s-%s overlaps lesson %d-%d", s.StartTime, s.EndTime, lStart, lEnd)
			}
		}
	}
}

func TestComputeAvailableSlotsCancelledLessonFreesSlot(t *testing.T) {
	cancelled := lessonAt(monday, 10, 11)
	cancelled.Status = models.LessonStatusCancelled

	slots, _ := ComputeAvailableSlots(monday, monday, mondayWeekly(), nil, []models.Lesson{cancelled}, 60, farPast)
	if got := slotStarts(slots); !reflect.DeepEqual(got, []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}) {
		t.Errorf("cancelled lesson should not block slots, got %v", got)
	}
}

func TestComputeAvailableSlotsExcludesPastStarts(t *testing.T) {
	// Now is 11:00 on the projected Monday: the 09:00 and 10:00 slots are
	// gone, and a slot starting exactly at now is excluded too.
	now := time.Date(2024, 12, 23, 11, 0, 0, 0, time.Local)

	slots, _ := ComputeAvailableSlots(monday, monday, mondayWeekly(), nil, nil, 60, now)
	want := []string{"12:00", "13:00", "14:00", "15:00", "16:00"}
	if got := slotStarts(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slot starts = %v, want %v", got, want)
	}
}

func TestComputeAvailableSlotsClosedOverride(t *testing.T) {
	overrides := map[string]models.AvailabilityOverride{
		"2024-12-23": {Date: "2024-12-23", IsAvailable: false, Reason: "holiday"},
	}

	slots, _ := ComputeAvailableSlots(monday, monday, mondayWeekly(), overrides, nil, 60, farPast)
	if len(slots) != 0 {
		t.Errorf("closed override should block projection, got %v", slots)
	}
}

func TestComputeAvailableSlotsRangeOrdering(t *testing.T) {
	weekly := NormalizeWeekly([]models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "09:00", End: "11:00"}}},
		{DayOfWeek: "tuesday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "14:00", End: "16:00"}}},
	})
	tuesday := monday.AddDate(0, 0, 1)

	slots, _ := ComputeAvailableSlots(monday, tuesday, weekly, nil, nil, 60, farPast)
	want := []models.BookableSlot{
		{Date: "2024-12-23", StartTime: "09:00", EndTime: "10:00"},
		{Date: "2024-12-23", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2024-12-24", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2024-12-24", StartTime: "15:00", EndTime: "16:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestComputeAvailableSlotsPartialDurationDiscarded(t *testing.T) {
	weekly := NormalizeWeekly([]models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "09:00", End: "10:30"}}},
	})

	slots, _ := ComputeAvailableSlots(monday, monday, weekly, nil, nil, 60, farPast)
	// 09:00-10:00 fits; 10:00-11:00 would spill past 10:30.
	if got := slotStarts(slots); !reflect.DeepEqual(got, []string{"09:00"}) {
		t.Errorf("slot starts = %v, want [09:00]", got)
	}
}

func TestComputeAvailableSlotsSkipsMalformedIntervals(t *testing.T) {
	weekly := NormalizeWeekly([]models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{
			{Start: "nine", End: "10:00"},
			{Start: "11:00", End: "13:00"},
		}},
	})

	slots, skipped := ComputeAvailableSlots(monday, monday, weekly, nil, nil, 60, farPast)
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped entry, got %v", skipped)
	}
	if skipped[0].Value != "nine" {
		t.Errorf("skipped entry = %+v", skipped[0])
	}
	// The valid interval still projects.
	if got := slotStarts(slots); !reflect.DeepEqual(got, []string{"11:00", "12:00"}) {
		t.Errorf("slot starts = %v, want [11:00 12:00]", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
