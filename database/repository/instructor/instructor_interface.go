package instructorRepo

import "drivebook/models"

// InstructorRepository defines methods for instructor data access.
type InstructorRepository interface {
	// GetByID retrieves an instructor by its unique ID.
	GetByID(id string) (*models.Instructor, error)
	// GetByEmail retrieves an instructor by its email address.
	GetByEmail(email string) (*models.Instructor, error)
	// Create inserts a new instructor record.
	Create(instructor *models.Instructor) error
	// Update modifies an existing instructor record.
	Update(instructor *models.Instructor) error
	// Delete removes an instructor record by its ID.
	Delete(id string) error
	// UpdateWeeklyAvailability replaces the instructor's stored weekly schedule.
	UpdateWeeklyAvailability(id string, weekly []models.DayAvailability) error
	// UpdateCancellationPolicy replaces the instructor's cancellation policy.
	UpdateCancellationPolicy(id string, policy models.CancellationPolicy) error
}
