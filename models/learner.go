package models

import "time"

// Learner is a student booking lessons on the platform. Balance is the
// learner's running account credit in the platform currency; refunds from
// cancellations are credited here rather than pushed back through the
// payment gateway.
type Learner struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Postcode     string    `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Balance      float64   `bson:"balance" json:"balance"`
	AuthToken    string    `bson:"authToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LearnerRegistrationRequest is the signup payload.
type LearnerRegistrationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}
