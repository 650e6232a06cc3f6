package booking

import (
	"context"

	"drivebook/models"
)

// BookingService orchestrates the lesson lifecycle: booking a projected slot,
// instructor completion/no-show actions, and learner cancellation with the
// tiered fee policy applied server-side.
type BookingService interface {
	BookLesson(ctx context.Context, learnerID string, req models.BookLessonRequest) (*models.Lesson, *models.Invoice, error)
	CompleteLesson(ctx context.Context, lessonID, instructorID string) error
	MarkNoShow(ctx context.Context, lessonID, instructorID string) error
	// PreviewCancellation computes an advisory preview with no side effects.
	PreviewCancellation(lessonID, learnerID string) (*models.CancellationPreview, error)
	// CancelLesson recomputes the fee authoritatively against fresh data and
	// applies it. Cancelling an already-cancelled lesson is a no-op.
	CancelLesson(ctx context.Context, lessonID, learnerID string) (*models.CancellationPreview, error)
	ListLearnerLessons(learnerID string) ([]models.Lesson, error)
	ListInstructorLessons(instructorID, from, to string) ([]models.Lesson, error)
}

// ReminderScheduler queues a reminder ahead of a lesson's start time.
type ReminderScheduler interface {
	ScheduleLessonReminder(lesson models.Lesson) error
}
