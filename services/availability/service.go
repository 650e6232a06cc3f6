package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	availabilityRepo "drivebook/database/repository/availability"
	instructorRepo "drivebook/database/repository/instructor"
	lessonRepo "drivebook/database/repository/lesson"
	"drivebook/models"
	"drivebook/services/schedule"
	"drivebook/utils"
)

var ErrInstructorNotFound = errors.New("instructor not found")

const slotCacheTTL = 60 * time.Second

// Service manages an instructor's weekly schedule and overrides, and computes
// bookable slots for a date range.
type Service interface {
	GetWeekly(instructorID string) ([]models.DayAvailability, error)
	ReplaceWeekly(instructorID string, weekly []models.DayAvailability) ([]models.DayAvailability, error)
	ListOverrides(instructorID string) ([]models.AvailabilityOverride, error)
	CreateOverride(override models.AvailabilityOverride) error
	DeleteOverride(instructorID, date string) error
	// GetAvailableSlots serves the public calendar/booking grid; results may
	// be briefly cached.
	GetAvailableSlots(instructorID, from, to string, durationMin int) ([]models.BookableSlot, error)
	// ProjectSlots always computes a fresh projection; the booking flow uses
	// it to re-validate a requested slot at confirm time.
	ProjectSlots(instructorID, from, to string, durationMin int) ([]models.BookableSlot, error)
}

// DefaultAvailabilityService is the concrete implementation.
type DefaultAvailabilityService struct {
	Instructors instructorRepo.InstructorRepository
	Overrides   availabilityRepo.OverrideRepository
	Lessons     lessonRepo.LessonRepository
	Cache       *redis.Client
	Clock       func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) GetWeekly(instructorID string) ([]models.DayAvailability, error) {
	instructor, err := s.Instructors.GetByID(instructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}
	return schedule.NormalizeWeekly(instructor.WeeklyAvailability), nil
}

func (s *DefaultAvailabilityService) ReplaceWeekly(instructorID string, weekly []models.DayAvailability) ([]models.DayAvailability, error) {
	if err := schedule.ValidateWeekly(weekly); err != nil {
		return nil, err
	}
	normalized := schedule.NormalizeWeekly(weekly)
	if err := s.Instructors.UpdateWeeklyAvailability(instructorID, normalized); err != nil {
		return nil, err
	}
	s.invalidateSlotCache(instructorID)
	return normalized, nil
}

func (s *DefaultAvailabilityService) ListOverrides(instructorID string) ([]models.AvailabilityOverride, error) {
	return s.Overrides.ListByInstructor(instructorID)
}

func (s *DefaultAvailabilityService) CreateOverride(override models.AvailabilityOverride) error {
	if err := schedule.ValidateOverride(override); err != nil {
		return err
	}
	if err := s.Overrides.Upsert(override); err != nil {
		return err
	}
	s.invalidateSlotCache(override.InstructorID)
	return nil
}

func (s *DefaultAvailabilityService) DeleteOverride(instructorID, date string) error {
	if err := s.Overrides.Delete(instructorID, date); err != nil {
		return err
	}
	s.invalidateSlotCache(instructorID)
	return nil
}

func (s *DefaultAvailabilityService) GetAvailableSlots(instructorID, from, to string, durationMin int) ([]models.BookableSlot, error) {
	cacheKey := fmt.Sprintf("slots:%s:%s:%s:%d", instructorID, from, to, durationMin)

	if s.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.BookableSlot
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		}
	}

	slots, err := s.ProjectSlots(instructorID, from, to, durationMin)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			s.Cache.Set(ctx, cacheKey, data, slotCacheTTL)
		}
	}
	return slots, nil
}

func (s *DefaultAvailabilityService) ProjectSlots(instructorID, from, to string, durationMin int) ([]models.BookableSlot, error) {
	fromDate, err := schedule.ParseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := schedule.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("invalid range: %s is before %s", to, from)
	}

	instructor, err := s.Instructors.GetByID(instructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}

	overrides, err := s.Overrides.ListByInstructorAndRange(instructorID, from, to)
	if err != nil {
		return nil, err
	}
	overridesByDate := make(map[string]models.AvailabilityOverride, len(overrides))
	for _, ov := range overrides {
		overridesByDate[ov.Date] = ov
	}

	lessons, err := s.Lessons.GetByInstructorAndDateRange(instructorID, from, to)
	if err != nil {
		return nil, err
	}

	weekly := schedule.NormalizeWeekly(instructor.WeeklyAvailability)
	slots, skipped := schedule.ComputeAvailableSlots(fromDate, toDate, weekly, overridesByDate, lessons, durationMin, s.now())
	for _, sk := range skipped {
		utils.GetLogger().Warn("skipped unparseable availability entry",
			zap.String("instructorId", instructorID),
			zap.String("date", sk.Date),
			zap.String("field", sk.Field),
			zap.String("value", sk.Value),
			zap.String("reason", sk.Reason))
	}
	return slots, nil
}

func (s *DefaultAvailabilityService) invalidateSlotCache(instructorID string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	keys, err := s.Cache.Keys(ctx, fmt.Sprintf("slots:%s:*", instructorID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Cache.Del(ctx, keys...)
}
