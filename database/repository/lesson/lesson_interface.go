package lessonRepo

import (
	"time"

	"drivebook/models"
)

// LessonRepository defines methods for lesson data access.
type LessonRepository interface {
	// GetByID retrieves a lesson by its unique ID.
	GetByID(id string) (*models.Lesson, error)
	// Create inserts a new lesson record.
	Create(lesson *models.Lesson) error
	// UpdateStatus sets the lesson's status and, when non-empty, its payment
	// status.
	UpdateStatus(id, status, paymentStatus string) error
	// GetByInstructorAndDateRange lists lessons for an instructor with dates
	// in [from, to] inclusive ("YYYY-MM-DD" keys).
	GetByInstructorAndDateRange(instructorID, from, to string) ([]models.Lesson, error)
	// GetByLearner lists a learner's lessons, most recent first.
	GetByLearner(learnerID string) ([]models.Lesson, error)
	// GetUpcoming lists scheduled lessons starting within the window.
	GetUpcoming(from, to time.Time) ([]models.Lesson, error)
}
