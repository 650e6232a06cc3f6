package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"drivebook/models"
	"drivebook/services/tasks"
)

// Mock repository for testing.

type mockLessonRepo struct {
	getByIDFunc     func(id string) (*models.Lesson, error)
	getUpcomingFunc func(from, to time.Time) ([]models.Lesson, error)
}

func (m *mockLessonRepo) GetByID(id string) (*models.Lesson, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, nil
}

func (m *mockLessonRepo) Create(lesson *models.Lesson) error                  { return nil }
func (m *mockLessonRepo) UpdateStatus(id, status, paymentStatus string) error { return nil }

func (m *mockLessonRepo) GetByInstructorAndDateRange(instructorID, from, to string) ([]models.Lesson, error) {
	return nil, nil
}

func (m *mockLessonRepo) GetByLearner(learnerID string) ([]models.Lesson, error) { return nil, nil }

func (m *mockLessonRepo) GetUpcoming(from, to time.Time) ([]models.Lesson, error) {
	if m.getUpcomingFunc != nil {
		return m.getUpcomingFunc(from, to)
	}
	return nil, nil
}

func TestSweepUpcomingReminders(t *testing.T) {
	now := time.Date(2024, 12, 23, 9, 0, 0, 0, time.UTC)

	t.Run("enqueues a reminder for each upcoming lesson", func(t *testing.T) {
		var queriedFrom, queriedTo time.Time
		lessons := &mockLessonRepo{
			getUpcomingFunc: func(from, to time.Time) ([]models.Lesson, error) {
				queriedFrom, queriedTo = from, to
				return []models.Lesson{
					{ID: "lesson-1", Status: models.LessonStatusScheduled},
					{ID: "lesson-2", Status: models.LessonStatusScheduled},
				}, nil
			},
		}

		var scheduled []string
		sweepUpcomingReminders(lessons, func(l models.Lesson) error {
			scheduled = append(scheduled, l.ID)
			return nil
		}, now)

		if len(scheduled) != 2 || scheduled[0] != "lesson-1" || scheduled[1] != "lesson-2" {
			t.Errorf("expected both lessons enqueued, got %v", scheduled)
		}
		if !queriedFrom.Equal(now) {
			t.Errorf("expected window to start at now, got %v", queriedFrom)
		}
		if want := now.Add(tasks.ReminderLead + sweepInterval); !queriedTo.Equal(want) {
			t.Errorf("expected window to end at %v, got %v", want, queriedTo)
		}
	})

	t.Run("a failing enqueue does not stop the sweep", func(t *testing.T) {
		lessons := &mockLessonRepo{
			getUpcomingFunc: func(from, to time.Time) ([]models.Lesson, error) {
				return []models.Lesson{{ID: "lesson-1"}, {ID: "lesson-2"}}, nil
			},
		}

		var attempted []string
		sweepUpcomingReminders(lessons, func(l models.Lesson) error {
			attempted = append(attempted, l.ID)
			if l.ID == "lesson-1" {
				return errors.New("queue unavailable")
			}
			return nil
		}, now)

		if len(attempted) != 2 {
			t.Errorf("expected both lessons attempted, got %v", attempted)
		}
	})

	t.Run("listing failure is tolerated", func(t *testing.T) {
		lessons := &mockLessonRepo{
			getUpcomingFunc: func(from, to time.Time) ([]models.Lesson, error) {
				return nil, errors.New("db unavailable")
			},
		}
		sweepUpcomingReminders(lessons, func(l models.Lesson) error {
			t.Errorf("unexpected enqueue for lesson %s", l.ID)
			return nil
		}, now)
	})
}

func TestHandleReminderTask(t *testing.T) {
	start := time.Date(2024, 12, 24, 10, 0, 0, 0, time.UTC)
	payload := models.ReminderPayload{
		LessonID:  "lesson-1",
		LearnerID: "learner-1",
		StartTime: start,
	}
	task, _, err := tasks.NewReminderTask(payload, start.Add(-tasks.ReminderLead))
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}

	t.Run("delivers for a scheduled lesson", func(t *testing.T) {
		lessons := &mockLessonRepo{
			getByIDFunc: func(id string) (*models.Lesson, error) {
				return &models.Lesson{ID: id, Status: models.LessonStatusScheduled, StartTime: start}, nil
			},
		}
		if err := handleReminderTask(lessons)(context.Background(), task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("skips a lesson cancelled after the reminder was queued", func(t *testing.T) {
		lessons := &mockLessonRepo{
			getByIDFunc: func(id string) (*models.Lesson, error) {
				return &models.Lesson{ID: id, Status: models.LessonStatusCancelled, StartTime: start}, nil
			},
		}
		if err := handleReminderTask(lessons)(context.Background(), task); err != nil {
			t.Fatalf("expected cancelled lesson to be skipped without error, got %v", err)
		}
	})
}
