package cancellation

import (
	"testing"
	"time"

	"drivebook/models"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func standardPolicy() *models.CancellationPolicy {
	return &models.CancellationPolicy{
		FreeCancellationWindowHours:   48,
		LateCancellationWindowHours:   24,
		LateCancellationChargePercent: 50,
		AllowLearnerCancellation:      true,
	}
}

func lessonStartingIn(hours float64, price float64, paymentStatus string) models.Lesson {
	return models.Lesson{
		ID:            "lesson-1",
		Price:         price,
		PaymentStatus: paymentStatus,
		StartTime:     now.Add(time.Duration(hours * float64(time.Hour))),
		Status:        models.LessonStatusScheduled,
	}
}

func TestPreviewTiers(t *testing.T) {
	tests := []struct {
		name       string
		hoursAhead float64
		wantTier   string
		wantPct    float64
	}{
		{"well outside free window", 100, models.CancellationTierFree, 0},
		{"exactly at free boundary", 48, models.CancellationTierFree, 0},
		{"inside late window", 30, models.CancellationTierLate, 50},
		{"exactly at late boundary", 24, models.CancellationTierLate, 50},
		{"very late", 2, models.CancellationTierVeryLate, 50},
		{"lesson already started clamps to very late", -1, models.CancellationTierVeryLate, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Preview(lessonStartingIn(tt.hoursAhead, 60, models.PaymentStatusPending), standardPolicy(), 0, now)
			if p.Tier != tt.wantTier {
				t.Errorf("tier = %q, want %q", p.Tier, tt.wantTier)
			}
			if p.ChargePercent != tt.wantPct {
				t.Errorf("chargePercent = %v, want %v", p.ChargePercent, tt.wantPct)
			}
			if tt.hoursAhead < 0 && p.HoursUntilLesson != 0 {
				t.Errorf("hoursUntilLesson = %v, want 0 for started lesson", p.HoursUntilLesson)
			}
		})
	}
}

func TestPreviewPaidLateCancellation(t *testing.T) {
	// £90 paid lesson, 48h free window, 24h late window, 50% charge,
	// cancelled 30 hours out.
	p := Preview(lessonStartingIn(30, 90, models.PaymentStatusPaid), standardPolicy(), 120, now)

	if p.Tier != models.CancellationTierLate {
		t.Errorf("tier = %q, want late", p.Tier)
	}
	if p.Fee != 45.00 {
		t.Errorf("fee = %v, want 45.00", p.Fee)
	}
	if p.RefundAmount != 45.00 {
		t.Errorf("refund = %v, want 45.00", p.RefundAmount)
	}
	if p.BalanceAfterCancel != 165.00 {
		t.Errorf("balanceAfterCancel = %v, want 165.00", p.BalanceAfterCancel)
	}
}

func TestPreviewFreeTierChargesNothing(t *testing.T) {
	p := Preview(lessonStartingIn(72, 90, models.PaymentStatusPaid), standardPolicy(), 10, now)
	if p.Fee != 0 {
		t.Errorf("fee = %v, want 0 in the free tier", p.Fee)
	}
	if p.RefundAmount != 90 {
		t.Errorf("refund = %v, want full price", p.RefundAmount)
	}
	if p.BalanceAfterCancel != 100 {
		t.Errorf("balanceAfterCancel = %v, want 100", p.BalanceAfterCancel)
	}
}

func TestPreviewPaidRefundPlusFeeEqualsPrice(t *testing.T) {
	// Awkward prices must still split exactly to the cent.
	prices := []float64{90, 45.50, 33.33, 0.01, 59.99}
	for _, price := range prices {
		p := Preview(lessonStartingIn(30, price, models.PaymentStatusPaid), standardPolicy(), 0, now)
		if got := RoundCurrency(p.RefundAmount + p.Fee); got != price {
			t.Errorf("price %v: refund %v + fee %v = %v", price, p.RefundAmount, p.Fee, got)
		}
	}
}

func TestPreviewUnpaidLessonDebitsFee(t *testing.T) {
	p := Preview(lessonStartingIn(30, 90, models.PaymentStatusPending), standardPolicy(), 20, now)
	if p.RefundAmount != 0 {
		t.Errorf("refund = %v, want 0 for unpaid lesson", p.RefundAmount)
	}
	if p.BalanceAfterCancel != -25.00 {
		t.Errorf("balanceAfterCancel = %v, want -25.00", p.BalanceAfterCancel)
	}
}

func TestPreviewCancellationNotAllowed(t *testing.T) {
	policy := standardPolicy()
	policy.AllowLearnerCancellation = false

	p := Preview(lessonStartingIn(2, 90, models.PaymentStatusPaid), policy, 50, now)
	if p.AllowLearnerCancellation {
		t.Error("preview should report cancellation not allowed")
	}
	if p.Fee != 0 || p.RefundAmount != 0 {
		t.Errorf("no charge should apply when cancellation is blocked, fee=%v refund=%v", p.Fee, p.RefundAmount)
	}
	if p.BalanceAfterCancel != 50 {
		t.Errorf("balance must be untouched, got %v", p.BalanceAfterCancel)
	}
}

func TestPreviewMissingPolicy(t *testing.T) {
	// No policy configured is treated as cancellation not allowed, never as a
	// free cancellation.
	p := Preview(lessonStartingIn(100, 90, models.PaymentStatusPaid), nil, 50, now)
	if p.AllowLearnerCancellation {
		t.Error("missing policy must block learner cancellation")
	}
	if p.Fee != 0 || p.BalanceAfterCancel != 50 {
		t.Errorf("missing policy must not move money, fee=%v balance=%v", p.Fee, p.BalanceAfterCancel)
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{45.0, 45.0},
		{0.125, 0.13}, // half rounds up
		{0.375, 0.38},
		{16.664, 16.66},
	}
	for _, tt := range tests {
		if got := RoundCurrency(tt.in); got != tt.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
