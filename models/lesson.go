package models

import "time"

// Lesson types.
const (
	LessonTypeStandard  = "standard"
	LessonTypeTestPrep  = "test-prep"
	LessonTypeMockTest  = "mock-test"
	LessonTypeMotorway  = "motorway"
	LessonTypeRefresher = "refresher"
)

// Lesson statuses. Completed, cancelled and no-show are terminal.
const (
	LessonStatusScheduled = "scheduled"
	LessonStatusCompleted = "completed"
	LessonStatusCancelled = "cancelled"
	LessonStatusNoShow    = "no-show"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusWaived   = "waived"
)

// Lesson represents a booked driving lesson.
type Lesson struct {
	ID             string    `bson:"id" json:"id"`
	InstructorID   string    `bson:"instructorId" json:"instructorId"`
	LearnerID      string    `bson:"learnerId" json:"learnerId"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD", derived from StartTime
	StartTime      time.Time `bson:"startTime" json:"startTime"`
	EndTime        time.Time `bson:"endTime" json:"endTime"`
	Duration       int       `bson:"duration" json:"duration"` // minutes
	Type           string    `bson:"type" json:"type"`
	Status         string    `bson:"status" json:"status"`
	PaymentStatus  string    `bson:"paymentStatus" json:"paymentStatus"`
	Price          float64   `bson:"price" json:"price"`
	PickupLocation string    `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the lesson is in a terminal status.
func (l *Lesson) IsTerminal() bool {
	switch l.Status {
	case LessonStatusCompleted, LessonStatusCancelled, LessonStatusNoShow:
		return true
	}
	return false
}

// BookLessonRequest is the payload for booking a lesson slot.
type BookLessonRequest struct {
	InstructorID   string `json:"instructorId" binding:"required"`
	Date           string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime      string `json:"startTime" binding:"required"` // "HH:MM"
	Duration       int    `json:"duration" binding:"required,min=15,max=240"`
	Type           string `json:"type" binding:"required,oneof=standard test-prep mock-test motorway refresher"`
	PickupLocation string `json:"pickupLocation,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PaymentMethod  string `json:"paymentMethod" binding:"required,oneof=card balance"`
}
