package schedule

import (
	"reflect"
	"testing"

	"drivebook/models"
)

func TestNormalizeWeeklyFillsMissingDays(t *testing.T) {
	raw := []models.DayAvailability{
		{DayOfWeek: "wednesday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "08:00", End: "12:00"}}},
	}

	got := NormalizeWeekly(raw)
	if len(got) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got))
	}

	wantOrder := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	for i, name := range wantOrder {
		if got[i].DayOfWeek != name {
			t.Errorf("day %d = %q, want %q", i, got[i].DayOfWeek, name)
		}
	}

	if !got[2].IsAvailable {
		t.Error("wednesday should keep its stored availability")
	}
	if got[2].Slots[0].Start != "08:00" {
		t.Errorf("wednesday kept slots = %v", got[2].Slots)
	}

	// Missing days default to unavailable with the 09:00-17:00 placeholder.
	for i, d := range got {
		if i == 2 {
			continue
		}
		if d.IsAvailable {
			t.Errorf("%s should default to unavailable", d.DayOfWeek)
		}
		if !reflect.DeepEqual(d.Slots, []models.TimeInterval{DefaultInterval}) {
			t.Errorf("%s default slots = %v", d.DayOfWeek, d.Slots)
		}
	}
}

func TestNormalizeWeeklyIdempotent(t *testing.T) {
	raw := []models.DayAvailability{
		{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "09:00", End: "17:00"}}},
		{DayOfWeek: "saturday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "10:00", End: "14:00"}}},
	}

	once := NormalizeWeekly(raw)
	twice := NormalizeWeekly(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestValidateWeekly(t *testing.T) {
	tests := []struct {
		name    string
		weekly  []models.DayAvailability
		wantErr bool
	}{
		{
			name: "valid",
			weekly: []models.DayAvailability{
				{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{
					{Start: "09:00", End: "12:00"},
					{Start: "13:00", End: "17:00"},
				}},
			},
		},
		{
			name: "unknown day name",
			weekly: []models.DayAvailability{
				{DayOfWeek: "mondy", IsAvailable: true},
			},
			wantErr: true,
		},
		{
			name: "start after end",
			weekly: []models.DayAvailability{
				{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "17:00", End: "09:00"}}},
			},
			wantErr: true,
		},
		{
			name: "overlapping intervals",
			weekly: []models.DayAvailability{
				{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{
					{Start: "09:00", End: "12:00"},
					{Start: "11:00", End: "15:00"},
				}},
			},
			wantErr: true,
		},
		{
			name: "malformed clock",
			weekly: []models.DayAvailability{
				{DayOfWeek: "monday", IsAvailable: true, Slots: []models.TimeInterval{{Start: "9am", End: "17:00"}}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeekly(tt.weekly)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeekly() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
