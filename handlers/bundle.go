package handlers

import (
	"github.com/gin-gonic/gin"

	instructorRepoPkg "drivebook/database/repository/instructor"
	learnerRepoPkg "drivebook/database/repository/learner"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration stays declarative.
type HandlerBundle struct {
	// Repositories the auth middleware verifies sessions against.
	InstructorRepo instructorRepoPkg.InstructorRepository
	LearnerRepo    learnerRepoPkg.LearnerRepository

	// Instructor endpoints
	RegisterInstructorHandler     gin.HandlerFunc
	AuthenticateInstructorHandler gin.HandlerFunc
	GetInstructorByIDHandler      gin.HandlerFunc
	GetPolicyHandler              gin.HandlerFunc
	UpdatePolicyHandler           gin.HandlerFunc

	// Learner endpoints
	RegisterLearnerHandler     gin.HandlerFunc
	AuthenticateLearnerHandler gin.HandlerFunc
	GetMeHandler               gin.HandlerFunc

	// Availability endpoints
	GetWeeklyHandler         gin.HandlerFunc
	ReplaceWeeklyHandler     gin.HandlerFunc
	ListOverridesHandler     gin.HandlerFunc
	CreateOverrideHandler    gin.HandlerFunc
	DeleteOverrideHandler    gin.HandlerFunc
	GetAvailableSlotsHandler gin.HandlerFunc

	// Lesson endpoints
	BookLessonHandler            gin.HandlerFunc
	ListLearnerLessonsHandler    gin.HandlerFunc
	ListInstructorLessonsHandler gin.HandlerFunc
	PreviewCancellationHandler   gin.HandlerFunc
	CancelLessonHandler          gin.HandlerFunc
	CompleteLessonHandler        gin.HandlerFunc
	NoShowHandler                gin.HandlerFunc
}

// NewHandlerBundle wires the concrete handlers into a bundle.
func NewHandlerBundle(
	instructorRepo instructorRepoPkg.InstructorRepository,
	learnerRepo learnerRepoPkg.LearnerRepository,
	instructor *InstructorHandler,
	learner *LearnerHandler,
	avail *AvailabilityHandler,
	bookingH *BookingHandler,
) *HandlerBundle {
	return &HandlerBundle{
		InstructorRepo: instructorRepo,
		LearnerRepo:    learnerRepo,

		RegisterInstructorHandler:     instructor.RegisterInstructorHandler,
		AuthenticateInstructorHandler: instructor.AuthenticateInstructorHandler,
		GetInstructorByIDHandler:      instructor.GetInstructorByIDHandler,
		GetPolicyHandler:              instructor.GetPolicyHandler,
		UpdatePolicyHandler:           instructor.UpdatePolicyHandler,

		RegisterLearnerHandler:     learner.RegisterLearnerHandler,
		AuthenticateLearnerHandler: learner.AuthenticateLearnerHandler,
		GetMeHandler:               learner.GetMeHandler,

		GetWeeklyHandler:         avail.GetWeeklyHandler,
		ReplaceWeeklyHandler:     avail.ReplaceWeeklyHandler,
		ListOverridesHandler:     avail.ListOverridesHandler,
		CreateOverrideHandler:    avail.CreateOverrideHandler,
		DeleteOverrideHandler:    avail.DeleteOverrideHandler,
		GetAvailableSlotsHandler: avail.GetAvailableSlotsHandler,

		BookLessonHandler:            bookingH.BookLessonHandler,
		ListLearnerLessonsHandler:    bookingH.ListLearnerLessonsHandler,
		ListInstructorLessonsHandler: bookingH.ListInstructorLessonsHandler,
		PreviewCancellationHandler:   bookingH.PreviewCancellationHandler,
		CancelLessonHandler:          bookingH.CancelLessonHandler,
		CompleteLessonHandler:        bookingH.CompleteLessonHandler,
		NoShowHandler:                bookingH.NoShowHandler,
	}
}
