package schedule

import "drivebook/models"

// DefaultInterval is pre-populated on days that have no stored record, so the
// UI has a sane starting point when the instructor switches the day on. It
// carries no meaning while the day is unavailable.
var DefaultInterval = models.TimeInterval{Start: "09:00", End: "17:00"}

// NormalizeWeekly expands a sparse list of per-day records into exactly 7
// DayAvailability records in Monday-first order. Days without a record
// default to unavailable with the default interval. Normalizing an already
// normalized schedule returns it unchanged.
func NormalizeWeekly(raw []models.DayAvailability) []models.DayAvailability {
	byDay := make(map[string]models.DayAvailability, len(raw))
	for _, d := range raw {
		if _, seen := byDay[d.DayOfWeek]; !seen {
			byDay[d.DayOfWeek] = d
		}
	}

	out := make([]models.DayAvailability, 0, len(WeekDays))
	for _, name := range WeekDays {
		if d, ok := byDay[name]; ok {
			if d.Slots == nil {
				d.Slots = []models.TimeInterval{DefaultInterval}
			}
			out = append(out, d)
			continue
		}
		out = append(out, models.DayAvailability{
			DayOfWeek:   name,
			IsAvailable: false,
			Slots:       []models.TimeInterval{DefaultInterval},
		})
	}
	return out
}

// ValidateWeekly checks a weekly schedule at the write boundary: known day
// names, parseable intervals with start before end, and no overlapping
// intervals within a day.
func ValidateWeekly(weekly []models.DayAvailability) error {
	for _, d := range weekly {
		if _, err := DayNameToIndexStrict(d.DayOfWeek); err != nil {
			return err
		}
		if err := validateIntervals(d.Slots); err != nil {
			return err
		}
	}
	return nil
}

func validateIntervals(slots []models.TimeInterval) error {
	type span struct{ start, end int }
	spans := make([]span, 0, len(slots))
	for _, iv := range slots {
		if err := ValidateInterval(iv); err != nil {
			return err
		}
		start, _ := ParseClock(iv.Start)
		end, _ := ParseClock(iv.End)
		spans = append(spans, span{start, end})
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				return ErrOverlappingIntervals
			}
		}
	}
	return nil
}
