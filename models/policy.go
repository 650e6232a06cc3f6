package models

// Cancellation fee tiers, selected by hours remaining until the lesson.
const (
	CancellationTierFree     = "free"
	CancellationTierLate     = "late"
	CancellationTierVeryLate = "very-late"
)

// CancellationPolicy is owned by an instructor and governs learner-initiated
// cancellations. The late and very-late tiers share the single configured
// charge percentage.
type CancellationPolicy struct {
	FreeCancellationWindowHours   float64 `bson:"freeCancellationWindowHours" json:"freeCancellationWindowHours"`
	LateCancellationWindowHours   float64 `bson:"lateCancellationWindowHours" json:"lateCancellationWindowHours"`
	LateCancellationChargePercent float64 `bson:"lateCancellationChargePercent" json:"lateCancellationChargePercent"`
	PolicyText                    string  `bson:"policyText,omitempty" json:"policyText,omitempty"`
	AllowLearnerCancellation      bool    `bson:"allowLearnerCancellation" json:"allowLearnerCancellation"`
}

// CancellationPreview is computed on demand and never persisted. It is
// advisory: the server recomputes the fee authoritatively when the
// cancellation is confirmed.
type CancellationPreview struct {
	LessonPrice              float64 `json:"lessonPrice"`
	PaymentStatus            string  `json:"paymentStatus"`
	Fee                      float64 `json:"fee"`
	RefundAmount             float64 `json:"refundAmount"`
	ChargePercent            float64 `json:"chargePercent"`
	HoursUntilLesson         float64 `json:"hoursUntilLesson"`
	Tier                     string  `json:"tier"`
	CurrentBalance           float64 `json:"currentBalance"`
	BalanceAfterCancel       float64 `json:"balanceAfterCancel"`
	PolicyText               string  `json:"policyText,omitempty"`
	AllowLearnerCancellation bool    `json:"allowLearnerCancellation"`
}
