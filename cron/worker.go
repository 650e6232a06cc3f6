package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"drivebook/config"
	lessonRepo "drivebook/database/repository/lesson"
	"drivebook/models"
	"drivebook/services/tasks"
)

// How often the catch-up sweep re-checks upcoming lessons.
const sweepInterval = time.Hour

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(lessons lessonRepo.LessonRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(lessons))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start the catch-up sweep: enqueues reminders for lessons whose
	// booking-time enqueue failed (task IDs keep it idempotent).
	scheduler := tasks.NewScheduler()
	go func() {
		for {
			sweepUpcomingReminders(lessons, scheduler.ScheduleLessonReminder, time.Now())
			time.Sleep(sweepInterval)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// sweepUpcomingReminders enqueues reminders for every scheduled lesson far
// enough out that its reminder has not fired yet.
func sweepUpcomingReminders(lessons lessonRepo.LessonRepository, schedule func(models.Lesson) error, now time.Time) {
	upcoming, err := lessons.GetUpcoming(now, now.Add(tasks.ReminderLead+sweepInterval))
	if err != nil {
		log.Printf("[ReminderSweep] failed to list upcoming lessons: %v", err)
		return
	}
	for _, lesson := range upcoming {
		if err := schedule(lesson); err != nil {
			log.Printf("[ReminderSweep] failed to enqueue reminder for lesson %s: %v", lesson.ID, err)
		}
	}
}

func handleReminderTask(lessons lessonRepo.LessonRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// The lesson may have been cancelled since the reminder was queued.
		lesson, err := lessons.GetByID(p.LessonID)
		if err != nil {
			log.Printf("[ReminderHandler] failed to fetch lesson %s: %v", p.LessonID, err)
			return err
		}
		if lesson == nil || lesson.Status != models.LessonStatusScheduled {
			log.Printf("[ReminderHandler] skipping reminder for lesson %s (no longer scheduled)", p.LessonID)
			return nil
		}

		log.Printf("[ReminderHandler] lesson %s for learner %s starts at %s (pickup: %s)",
			p.LessonID, p.LearnerID, p.StartTime.Format(time.RFC3339), p.PickupLocation)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
