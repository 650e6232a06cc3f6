package schedule

import (
	"reflect"
	"testing"

	"drivebook/models"
)

func weeklyAllOpen() []models.DayAvailability {
	var weekly []models.DayAvailability
	for _, name := range WeekDays {
		weekly = append(weekly, models.DayAvailability{
			DayOfWeek:   name,
			IsAvailable: true,
			Slots:       []models.TimeInterval{{Start: "09:00", End: "17:00"}},
		})
	}
	return weekly
}

func TestResolveDayClosedOverrideBlocksDate(t *testing.T) {
	// 2024-12-25 is a normally-available Wednesday.
	overrides := map[string]models.AvailabilityOverride{
		"2024-12-25": {Date: "2024-12-25", IsAvailable: false, Reason: "christmas"},
	}

	got, err := ResolveDay("2024-12-25", weeklyAllOpen(), overrides)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if got.IsAvailable {
		t.Error("closed override should block the date")
	}
	if len(got.Slots) != 0 {
		t.Errorf("closed override should yield no slots, got %v", got.Slots)
	}
}

func TestResolveDayOpenOverrideReplacesSlots(t *testing.T) {
	overrides := map[string]models.AvailabilityOverride{
		"2024-12-23": {
			Date:        "2024-12-23",
			IsAvailable: true,
			Slots:       []models.TimeInterval{{Start: "13:00", End: "15:00"}},
		},
	}

	got, err := ResolveDay("2024-12-23", weeklyAllOpen(), overrides)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	want := []models.TimeInterval{{Start: "13:00", End: "15:00"}}
	if !reflect.DeepEqual(got.Slots, want) {
		t.Errorf("override slots should replace weekly slots, got %v", got.Slots)
	}
}

func TestResolveDayOpenOverrideWithNoSlots(t *testing.T) {
	// Available-but-empty is the documented edge case: the day is marked
	// available yet contributes zero bookable time.
	overrides := map[string]models.AvailabilityOverride{
		"2024-12-23": {Date: "2024-12-23", IsAvailable: true},
	}

	got, err := ResolveDay("2024-12-23", weeklyAllOpen(), overrides)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if !got.IsAvailable {
		t.Error("open override should leave the day available")
	}
	if len(got.Slots) != 0 {
		t.Errorf("open override without slots should yield zero slots, got %v", got.Slots)
	}
}

func TestResolveDayFallsBackToWeekly(t *testing.T) {
	weekly := NormalizeWeekly([]models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "10:00", End: "12:00"}}},
	})

	// 2024-12-23 is a Monday.
	got, err := ResolveDay("2024-12-23", weekly, nil)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if !got.IsAvailable || got.Slots[0].Start != "10:00" {
		t.Errorf("expected weekly monday entry, got %+v", got)
	}

	// 2024-12-24 is a Tuesday with no stored record.
	got, err = ResolveDay("2024-12-24", weekly, nil)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if got.IsAvailable {
		t.Error("tuesday should default to unavailable")
	}
}

func TestResolveDayRejectsBadDate(t *testing.T) {
	if _, err := ResolveDay("25-12-2024", weeklyAllOpen(), nil); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestValidateOverride(t *testing.T) {
	tests := []struct {
		name    string
		ov      models.AvailabilityOverride
		wantErr bool
	}{
		{name: "closed override needs no slots", ov: models.AvailabilityOverride{Date: "2024-12-25", IsAvailable: false}},
		{name: "open override with valid slots", ov: models.AvailabilityOverride{Date: "2024-12-25", IsAvailable: true, Slots: []models.TimeInterval{{Start: "09:00", End: "11:00"}}}},
		{name: "bad date", ov: models.AvailabilityOverride{Date: "dec 25"}, wantErr: true},
		{name: "bad slot on open override", ov: models.AvailabilityOverride{Date: "2024-12-25", IsAvailable: true, Slots: []models.TimeInterval{{Start: "11:00", End: "09:00"}}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverride(tt.ov)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverride() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
