package schedule

import (
	"time"

	"drivebook/models"
)

// lessonBlocksSlot reports whether an existing lesson should exclude
// overlapping candidates. Cancelled lessons free their slot.
func lessonBlocksSlot(l models.Lesson) bool {
	return l.Status != models.LessonStatusCancelled
}

// ComputeAvailableSlots projects the weekly schedule plus overrides onto a
// concrete date range and splits the effective intervals into bookable slots
// of the requested duration, excluding candidates that overlap an existing
// lesson or start at or before now.
//
// Malformed intervals fail only themselves: the projection carries on and
// reports every skipped entry so the caller can log them. Results are ordered
// by date, then start time.
func ComputeAvailableSlots(
	from, to time.Time,
	weekly []models.DayAvailability,
	overrides map[string]models.AvailabilityOverride,
	lessons []models.Lesson,
	durationMin int,
	now time.Time,
) ([]models.BookableSlot, []models.SkippedEntry) {
	var slots []models.BookableSlot
	var skipped []models.SkippedEntry

	if durationMin <= 0 {
		return slots, skipped
	}

	lessonsByDate := make(map[string][]models.Lesson)
	for _, l := range lessons {
		if lessonBlocksSlot(l) {
			lessonsByDate[l.Date] = append(lessonsByDate[l.Date], l)
		}
	}

	for day := dateOnly(from); !day.After(dateOnly(to)); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")

		effective, err := ResolveDay(date, weekly, overrides)
		if err != nil {
			skipped = append(skipped, models.SkippedEntry{Date: date, Field: "date", Value: date, Reason: err.Error()})
			continue
		}
		if !effective.IsAvailable || len(effective.Slots) == 0 {
			continue
		}

		for _, iv := range effective.Slots {
			startMin, err := ParseClock(iv.Start)
			if err != nil {
				skipped = append(skipped, models.SkippedEntry{Date: date, Field: "start", Value: iv.Start, Reason: err.Error()})
				continue
			}
			endMin, err := ParseClock(iv.End)
			if err != nil {
				skipped = append(skipped, models.SkippedEntry{Date: date, Field: "end", Value: iv.End, Reason: err.Error()})
				continue
			}

			for cand := startMin; cand+durationMin <= endMin; cand += durationMin {
				candEnd := cand + durationMin
				if overlapsLesson(day, cand, candEnd, lessonsByDate[date]) {
					continue
				}
				candStart := day.Add(time.Duration(cand) * time.Minute)
				if !candStart.After(now) {
					continue
				}
				slots = append(slots, models.BookableSlot{
					Date:      date,
					StartTime: FormatClock(cand),
					EndTime:   FormatClock(candEnd),
				})
			}
		}
	}
	return slots, skipped
}

// overlapsLesson applies the half-open overlap test: two intervals overlap
// iff a.start < b.end && b.start < a.end.
func overlapsLesson(day time.Time, startMin, endMin int, lessons []models.Lesson) bool {
	for _, l := range lessons {
		lStart := minutesIntoDay(day, l.StartTime)
		lEnd := minutesIntoDay(day, l.EndTime)
		if startMin < lEnd && lStart < endMin {
			return true
		}
	}
	return false
}

func minutesIntoDay(day time.Time, t time.Time) int {
	return int(t.In(day.Location()).Sub(day) / time.Minute)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
