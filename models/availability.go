package models

// TimeInterval is a time-of-day window in 24-hour "HH:MM" form, minute
// granularity. Start must be strictly before End.
type TimeInterval struct {
	Start string `bson:"start" json:"start" binding:"required"`
	End   string `bson:"end" json:"end" binding:"required"`
}

// DayAvailability is one day of an instructor's recurring weekly schedule.
// The canonical weekly schedule holds exactly one record per day of week.
type DayAvailability struct {
	DayOfWeek   string         `bson:"dayOfWeek" json:"dayOfWeek"` // "monday".."sunday"
	IsAvailable bool           `bson:"isAvailable" json:"isAvailable"`
	Slots       []TimeInterval `bson:"slots" json:"slots"`
}

// AvailabilityOverride is a date-specific exception that fully replaces the
// weekly pattern for that date. At most one override per calendar date.
type AvailabilityOverride struct {
	InstructorID string         `bson:"instructorId" json:"instructorId"`
	Date         string         `bson:"date" json:"date"` // "YYYY-MM-DD", unique per instructor
	IsAvailable  bool           `bson:"isAvailable" json:"isAvailable"`
	Reason       string         `bson:"reason,omitempty" json:"reason,omitempty"`
	Slots        []TimeInterval `bson:"slots,omitempty" json:"slots,omitempty"`
}

// BookableSlot is a concrete slot the projection engine produced for a
// specific calendar date.
type BookableSlot struct {
	Date      string `json:"date"`      // "YYYY-MM-DD"
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// SkippedEntry records an input the projection engine could not parse. The
// projection continues past bad entries and reports them to the caller.
type SkippedEntry struct {
	Date   string `json:"date,omitempty"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}
