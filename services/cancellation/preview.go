// Package cancellation computes cancellation-fee previews from an
// instructor's tiered policy. The preview is advisory: the same computation
// runs server-side again when the cancellation is confirmed, against fresh
// lesson and policy snapshots.
package cancellation

import (
	"math"
	"time"

	"drivebook/models"
)

// RoundCurrency rounds an amount to 2 decimal places, half up.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// HoursUntil returns the hours remaining until the lesson starts, clamped to
// zero once the lesson has started so an in-progress lesson lands in the
// maximal fee tier.
func HoursUntil(lesson models.Lesson, now time.Time) float64 {
	hours := lesson.StartTime.Sub(now).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// SelectTier picks the fee tier and charge percentage for the given hours
// remaining. The late and very-late tiers both charge the policy's single
// configured rate; the labels differ so the UI can message them differently.
func SelectTier(policy models.CancellationPolicy, hoursUntilLesson float64) (tier string, chargePercent float64) {
	switch {
	case hoursUntilLesson >= policy.FreeCancellationWindowHours:
		return models.CancellationTierFree, 0
	case hoursUntilLesson >= policy.LateCancellationWindowHours:
		return models.CancellationTierLate, policy.LateCancellationChargePercent
	default:
		return models.CancellationTierVeryLate, policy.LateCancellationChargePercent
	}
}

// Preview computes the full cancellation preview for a lesson. A nil policy
// means no policy is configured for the instructor, which is treated as
// learner cancellation not being allowed rather than as a free cancellation.
func Preview(lesson models.Lesson, policy *models.CancellationPolicy, currentBalance float64, now time.Time) models.CancellationPreview {
	preview := models.CancellationPreview{
		LessonPrice:        lesson.Price,
		PaymentStatus:      lesson.PaymentStatus,
		CurrentBalance:     currentBalance,
		BalanceAfterCancel: currentBalance,
	}
	if policy == nil || !policy.AllowLearnerCancellation {
		if policy != nil {
			preview.PolicyText = policy.PolicyText
			preview.HoursUntilLesson = HoursUntil(lesson, now)
		}
		return preview
	}

	hours := HoursUntil(lesson, now)
	tier, pct := SelectTier(*policy, hours)
	fee := RoundCurrency(lesson.Price * pct / 100)

	preview.Fee = fee
	preview.ChargePercent = pct
	preview.HoursUntilLesson = hours
	preview.Tier = tier
	preview.PolicyText = policy.PolicyText
	preview.AllowLearnerCancellation = true

	if lesson.PaymentStatus == models.PaymentStatusPaid {
		// Paid lessons keep the fee and credit the remainder back to the
		// learner's account balance.
		preview.RefundAmount = RoundCurrency(lesson.Price - fee)
		preview.BalanceAfterCancel = RoundCurrency(currentBalance + preview.RefundAmount)
	} else {
		preview.RefundAmount = 0
		preview.BalanceAfterCancel = RoundCurrency(currentBalance - fee)
	}
	return preview
}
