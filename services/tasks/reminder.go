package tasks

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"drivebook/config"
	"drivebook/models"
)

const TypeSendReminder = "reminder:send"

// ReminderLead is how long before the lesson starts a reminder fires.
const ReminderLead = 24 * time.Hour

// NewReminderTask builds an asynq task that fires at the given time. The
// task ID is derived from the lesson, so enqueueing the same lesson twice
// (booking path plus the catch-up sweep) yields a single reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.LessonID),
	}

	return task, opts, nil
}

// Scheduler enqueues lesson reminders on the asynq queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler creates a scheduler backed by the reminder queue Redis DB.
func NewScheduler() *Scheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &Scheduler{client: client}
}

// ScheduleLessonReminder queues a reminder 24 hours before the lesson. A
// lesson starting sooner than that gets no reminder.
func (s *Scheduler) ScheduleLessonReminder(lesson models.Lesson) error {
	fireAt := lesson.StartTime.Add(-ReminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		LessonID:       lesson.ID,
		LearnerID:      lesson.LearnerID,
		InstructorID:   lesson.InstructorID,
		StartTime:      lesson.StartTime,
		PickupLocation: lesson.PickupLocation,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		// Already queued by an earlier path.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}
	return nil
}

// Close releases the underlying queue client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
