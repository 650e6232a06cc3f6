package schedule

import (
	"errors"

	"drivebook/models"
)

var ErrOverlappingIntervals = errors.New("intervals within a day must not overlap")

// ResolveDay computes the effective availability for one calendar date. An
// override for the date fully supersedes the weekly pattern: a closed
// override blocks the whole day, an open override's slots replace the weekly
// day's slots. An open override with no slots yields an available day with
// zero bookable time.
//
// Without an override the date's weekday entry from the normalized weekly
// schedule is returned verbatim.
func ResolveDay(date string, weekly []models.DayAvailability, overrides map[string]models.AvailabilityOverride) (models.DayAvailability, error) {
	day, err := ParseDate(date)
	if err != nil {
		return models.DayAvailability{}, err
	}
	name := DayNameForDate(day)

	if ov, ok := overrides[date]; ok {
		if !ov.IsAvailable {
			return models.DayAvailability{DayOfWeek: name, IsAvailable: false, Slots: []models.TimeInterval{}}, nil
		}
		slots := ov.Slots
		if slots == nil {
			slots = []models.TimeInterval{}
		}
		return models.DayAvailability{DayOfWeek: name, IsAvailable: true, Slots: slots}, nil
	}

	for _, d := range weekly {
		if d.DayOfWeek == name {
			return d, nil
		}
	}
	return models.DayAvailability{DayOfWeek: name, IsAvailable: false, Slots: []models.TimeInterval{}}, nil
}

// ValidateOverride checks an override payload at the write boundary. Slots
// are only meaningful on an open override.
func ValidateOverride(ov models.AvailabilityOverride) error {
	if _, err := ParseDate(ov.Date); err != nil {
		return err
	}
	if !ov.IsAvailable {
		return nil
	}
	return validateIntervals(ov.Slots)
}
