package models

import "time"

// PaymentRequest describes a charge to take for a lesson booking.
type PaymentRequest struct {
	LearnerID   string  `json:"learnerId"`
	LessonID    string  `json:"lessonId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"` // "card" or "balance"
	Description string  `json:"description,omitempty"`
	Idempotency string  `json:"idempotency,omitempty"`
}

// Invoice records the outcome of a processed payment.
type Invoice struct {
	InvoiceID string    `bson:"invoiceId" json:"invoiceId"`
	LearnerID string    `bson:"learnerId" json:"learnerId"`
	LessonID  string    `bson:"lessonId" json:"lessonId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"` // "pending", "paid", "failed"
	PaymentID string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"` // gateway payment intent id
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
