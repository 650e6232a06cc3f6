package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"drivebook/models"
	"drivebook/utils"
)

// Lesson lifecycle event types.
const (
	TypeLessonBooked    = "lesson.booked"
	TypeLessonCancelled = "lesson.cancelled"
	TypeLessonCompleted = "lesson.completed"
	TypeLessonNoShow    = "lesson.no_show"
)

// LessonEvent is the payload published to the lesson event stream.
type LessonEvent struct {
	Type         string    `json:"type"`
	LessonID     string    `json:"lessonId"`
	InstructorID string    `json:"instructorId"`
	LearnerID    string    `json:"learnerId"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	Fee          float64   `json:"fee,omitempty"`
	RefundAmount float64   `json:"refundAmount,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher publishes lesson lifecycle events.
type Publisher interface {
	PublishLessonEvent(ctx context.Context, event LessonEvent) error
	Close() error
}

// KafkaPublisher publishes lesson events to a Kafka topic, keyed by lesson ID
// so events for one lesson stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to the given brokers/topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer}, nil
}

// NewLessonEvent builds an event from a lesson snapshot.
func NewLessonEvent(eventType string, lesson models.Lesson) LessonEvent {
	return LessonEvent{
		Type:         eventType,
		LessonID:     lesson.ID,
		InstructorID: lesson.InstructorID,
		LearnerID:    lesson.LearnerID,
		Date:         lesson.Date,
		Status:       lesson.Status,
		OccurredAt:   time.Now(),
	}
}

func (p *KafkaPublisher) PublishLessonEvent(ctx context.Context, event LessonEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.LessonID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish lesson event: %w", err)
	}

	utils.GetLogger().Debug("published lesson event",
		zap.String("type", event.Type), zap.String("lessonId", event.LessonID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
