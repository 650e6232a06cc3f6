package models

import "time"

// Instructor is a driving instructor offering lessons on the platform.
type Instructor struct {
	ID                 string              `bson:"id" json:"id"`
	Email              string              `bson:"email" json:"email"`
	PasswordHash       string              `bson:"passwordHash" json:"-"`
	Name               string              `bson:"name" json:"name"`
	Phone              string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Postcode           string              `bson:"postcode,omitempty" json:"postcode,omitempty"`
	TransmissionType   string              `bson:"transmissionType,omitempty" json:"transmissionType,omitempty"` // "manual" or "automatic"
	HourlyRate         float64             `bson:"hourlyRate" json:"hourlyRate"`
	Bio                string              `bson:"bio,omitempty" json:"bio,omitempty"`
	WeeklyAvailability []DayAvailability   `bson:"weeklyAvailability,omitempty" json:"weeklyAvailability,omitempty"`
	CancellationPolicy *CancellationPolicy `bson:"cancellationPolicy,omitempty" json:"cancellationPolicy,omitempty"`
	AuthToken          string              `bson:"authToken,omitempty" json:"-"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips fields that must not be exposed on the discovery
// surface.
func (i *Instructor) PublicProfile() Instructor {
	return Instructor{
		ID:               i.ID,
		Name:             i.Name,
		Postcode:         i.Postcode,
		TransmissionType: i.TransmissionType,
		HourlyRate:       i.HourlyRate,
		Bio:              i.Bio,
	}
}

// InstructorRegistrationRequest is the signup payload.
type InstructorRegistrationRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	Name             string  `json:"name" binding:"required"`
	Phone            string  `json:"phone,omitempty"`
	Postcode         string  `json:"postcode,omitempty"`
	TransmissionType string  `json:"transmissionType,omitempty"`
	HourlyRate       float64 `json:"hourlyRate" binding:"required,gt=0"`
}
