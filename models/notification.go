package models

import "time"

// ReminderPayload is the task payload for a queued lesson reminder.
type ReminderPayload struct {
	LessonID       string    `json:"lessonId"`
	LearnerID      string    `json:"learnerId"`
	InstructorID   string    `json:"instructorId"`
	StartTime      time.Time `json:"startTime"`
	PickupLocation string    `json:"pickupLocation,omitempty"`
}
