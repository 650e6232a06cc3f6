package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	instructorRepo "drivebook/database/repository/instructor"
	learnerRepo "drivebook/database/repository/learner"
	lessonRepo "drivebook/database/repository/lesson"
	"drivebook/models"
	"drivebook/services/availability"
	"drivebook/services/cancellation"
	"drivebook/services/events"
	"drivebook/services/payment"
	"drivebook/services/schedule"
	"drivebook/utils"
)

// DefaultBookingService is the concrete implementation.
type DefaultBookingService struct {
	Lessons      lessonRepo.LessonRepository
	Instructors  instructorRepo.InstructorRepository
	Learners     learnerRepo.LearnerRepository
	Availability availability.Service
	Payment      payment.Handler
	Events       events.Publisher
	Reminders    ReminderScheduler
	Currency     string
	Clock        func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// BookLesson validates the requested slot against a fresh projection, creates
// the lesson, and takes payment. A payment failure cancels the just-created
// lesson.
func (s *DefaultBookingService) BookLesson(ctx context.Context, learnerID string, req models.BookLessonRequest) (*models.Lesson, *models.Invoice, error) {
	learner, err := s.Learners.GetByID(learnerID)
	if err != nil {
		return nil, nil, err
	}
	if learner == nil {
		return nil, nil, ErrLearnerNotFound
	}

	instructor, err := s.Instructors.GetByID(req.InstructorID)
	if err != nil {
		return nil, nil, err
	}
	if instructor == nil {
		return nil, nil, ErrInstructorNotFound
	}

	// A fresh projection, never the cached one: the slot must still be free
	// at confirm time.
	slots, err := s.Availability.ProjectSlots(req.InstructorID, req.Date, req.Date, req.Duration)
	if err != nil {
		return nil, nil, err
	}
	if !containsSlot(slots, req.Date, req.StartTime) {
		return nil, nil, ErrSlotUnavailable
	}

	startMin, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, nil, err
	}
	day, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, nil, err
	}
	start := day.Add(time.Duration(startMin) * time.Minute)
	price := cancellation.RoundCurrency(instructor.HourlyRate * float64(req.Duration) / 60)

	lesson := &models.Lesson{
		ID:             uuid.New().String(),
		InstructorID:   req.InstructorID,
		LearnerID:      learnerID,
		Date:           req.Date,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(req.Duration) * time.Minute),
		Duration:       req.Duration,
		Type:           req.Type,
		Status:         models.LessonStatusScheduled,
		PaymentStatus:  models.PaymentStatusPending,
		Price:          price,
		PickupLocation: req.PickupLocation,
		Notes:          req.Notes,
	}
	if err := s.Lessons.Create(lesson); err != nil {
		return nil, nil, err
	}

	invoice, err := s.Payment.ProcessPayment(ctx, models.PaymentRequest{
		LearnerID:   learnerID,
		LessonID:    lesson.ID,
		Amount:      price,
		Currency:    s.Currency,
		Method:      req.PaymentMethod,
		Description: fmt.Sprintf("%s driving lesson on %s at %s", req.Type, req.Date, req.StartTime),
		Idempotency: lesson.ID,
	})
	if err != nil {
		// Compensate: free the slot again so the failed payment does not
		// hold it.
		if cancelErr := s.Lessons.UpdateStatus(lesson.ID, models.LessonStatusCancelled, models.PaymentStatusWaived); cancelErr != nil {
			utils.GetLogger().Error("failed to release lesson after payment failure",
				zap.String("lessonId", lesson.ID), zap.Error(cancelErr))
		}
		return nil, nil, fmt.Errorf("payment failed: %w", err)
	}

	if invoice.Status == "paid" {
		lesson.PaymentStatus = models.PaymentStatusPaid
		if err := s.Lessons.UpdateStatus(lesson.ID, models.LessonStatusScheduled, models.PaymentStatusPaid); err != nil {
			utils.GetLogger().Error("failed to mark lesson paid",
				zap.String("lessonId", lesson.ID), zap.Error(err))
		}
	}

	s.publish(ctx, events.NewLessonEvent(events.TypeLessonBooked, *lesson))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleLessonReminder(*lesson); err != nil {
			utils.GetLogger().Warn("failed to schedule lesson reminder",
				zap.String("lessonId", lesson.ID), zap.Error(err))
		}
	}
	return lesson, invoice, nil
}

func (s *DefaultBookingService) CompleteLesson(ctx context.Context, lessonID, instructorID string) error {
	lesson, err := s.ownedLesson(lessonID, instructorID)
	if err != nil {
		return err
	}
	if lesson.Status != models.LessonStatusScheduled {
		return ErrLessonNotScheduled
	}
	if err := s.Lessons.UpdateStatus(lessonID, models.LessonStatusCompleted, ""); err != nil {
		return err
	}
	lesson.Status = models.LessonStatusCompleted
	s.publish(ctx, events.NewLessonEvent(events.TypeLessonCompleted, *lesson))
	return nil
}

func (s *DefaultBookingService) MarkNoShow(ctx context.Context, lessonID, instructorID string) error {
	lesson, err := s.ownedLesson(lessonID, instructorID)
	if err != nil {
		return err
	}
	if lesson.Status != models.LessonStatusScheduled {
		return ErrLessonNotScheduled
	}
	if err := s.Lessons.UpdateStatus(lessonID, models.LessonStatusNoShow, ""); err != nil {
		return err
	}
	lesson.Status = models.LessonStatusNoShow
	s.publish(ctx, events.NewLessonEvent(events.TypeLessonNoShow, *lesson))
	return nil
}

func (s *DefaultBookingService) PreviewCancellation(lessonID, learnerID string) (*models.CancellationPreview, error) {
	lesson, policy, balance, err := s.cancellationInputs(lessonID, learnerID)
	if err != nil {
		return nil, err
	}
	if lesson.Status == models.LessonStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if lesson.IsTerminal() {
		return nil, ErrLessonNotCancellable
	}

	preview := cancellation.Preview(*lesson, policy, balance, s.now())
	return &preview, nil
}

func (s *DefaultBookingService) CancelLesson(ctx context.Context, lessonID, learnerID string) (*models.CancellationPreview, error) {
	// Everything is re-fetched here: the preview a client holds is advisory
	// and the charge of record comes from this computation.
	lesson, policy, balance, err := s.cancellationInputs(lessonID, learnerID)
	if err != nil {
		return nil, err
	}
	if lesson.Status == models.LessonStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if lesson.IsTerminal() {
		return nil, ErrLessonNotCancellable
	}

	preview := cancellation.Preview(*lesson, policy, balance, s.now())
	if !preview.AllowLearnerCancellation {
		return nil, ErrCancellationNotAllowed
	}

	paymentStatus := models.PaymentStatusWaived
	if lesson.PaymentStatus == models.PaymentStatusPaid {
		paymentStatus = models.PaymentStatusRefunded
	}
	if err := s.Lessons.UpdateStatus(lessonID, models.LessonStatusCancelled, paymentStatus); err != nil {
		return nil, err
	}

	delta := preview.BalanceAfterCancel - preview.CurrentBalance
	if delta != 0 {
		if _, err := s.Learners.AdjustBalance(learnerID, delta); err != nil {
			return nil, fmt.Errorf("lesson cancelled but balance adjustment failed: %w", err)
		}
	}

	lesson.Status = models.LessonStatusCancelled
	event := events.NewLessonEvent(events.TypeLessonCancelled, *lesson)
	event.Fee = preview.Fee
	event.RefundAmount = preview.RefundAmount
	s.publish(ctx, event)

	return &preview, nil
}

func (s *DefaultBookingService) ListLearnerLessons(learnerID string) ([]models.Lesson, error) {
	return s.Lessons.GetByLearner(learnerID)
}

func (s *DefaultBookingService) ListInstructorLessons(instructorID, from, to string) ([]models.Lesson, error) {
	return s.Lessons.GetByInstructorAndDateRange(instructorID, from, to)
}

func (s *DefaultBookingService) ownedLesson(lessonID, instructorID string) (*models.Lesson, error) {
	lesson, err := s.Lessons.GetByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	if lesson.InstructorID != instructorID {
		return nil, ErrNotLessonOwner
	}
	return lesson, nil
}

// cancellationInputs loads the fresh lesson, policy and balance snapshots a
// cancellation computation runs against.
func (s *DefaultBookingService) cancellationInputs(lessonID, learnerID string) (*models.Lesson, *models.CancellationPolicy, float64, error) {
	lesson, err := s.Lessons.GetByID(lessonID)
	if err != nil {
		return nil, nil, 0, err
	}
	if lesson == nil {
		return nil, nil, 0, ErrLessonNotFound
	}
	if lesson.LearnerID != learnerID {
		return nil, nil, 0, ErrNotLessonOwner
	}

	instructor, err := s.Instructors.GetByID(lesson.InstructorID)
	if err != nil {
		return nil, nil, 0, err
	}
	var policy *models.CancellationPolicy
	if instructor != nil {
		policy = instructor.CancellationPolicy
	}

	learner, err := s.Learners.GetByID(learnerID)
	if err != nil {
		return nil, nil, 0, err
	}
	if learner == nil {
		return nil, nil, 0, ErrLearnerNotFound
	}
	return lesson, policy, learner.Balance, nil
}

func (s *DefaultBookingService) publish(ctx context.Context, event events.LessonEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishLessonEvent(ctx, event); err != nil {
		utils.GetLogger().Warn("failed to publish lesson event",
			zap.String("type", event.Type), zap.String("lessonId", event.LessonID), zap.Error(err))
	}
}

func containsSlot(slots []models.BookableSlot, date, startTime string) bool {
	for _, slot := range slots {
		if slot.Date == date && slot.StartTime == startTime {
			return true
		}
	}
	return false
}
