package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	learnerRepo "drivebook/database/repository/learner"
	"drivebook/models"
)

// ErrInsufficientBalance is returned when a balance payment exceeds the
// learner's account credit.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// Handler processes lesson payments.
type Handler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripePaymentHandler takes card payments through Stripe payment intents and
// balance payments against the learner's account credit.
type StripePaymentHandler struct {
	logger      *zap.Logger
	learnerRepo learnerRepo.LearnerRepository
}

// NewStripePaymentHandler creates a payment handler.
func NewStripePaymentHandler(logger *zap.Logger, learners learnerRepo.LearnerRepository) *StripePaymentHandler {
	return &StripePaymentHandler{
		logger:      logger,
		learnerRepo: learners,
	}
}

func (h *StripePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %v", req.Amount)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		LearnerID: req.LearnerID,
		LessonID:  req.LessonID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch req.Method {
	case "card":
		return h.processCardPayment(req, inv)
	case "balance":
		return h.processBalancePayment(req, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (h *StripePaymentHandler) processCardPayment(req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(req.Amount)),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Idempotency != "" {
		params.SetIdempotencyKey(req.Idempotency)
	}
	params.AddMetadata("lessonId", req.LessonID)
	params.AddMetadata("learnerId", req.LearnerID)

	pi, err := paymentintent.New(params)
	if err != nil {
		inv.Status = "failed"
		inv.Error = err.Error()
		h.logger.Error("card payment failed", zap.String("lessonId", req.LessonID), zap.Error(err))
		return inv, fmt.Errorf("failed to create payment intent: %w", err)
	}

	inv.PaymentID = pi.ID
	inv.Status = "paid"
	inv.UpdatedAt = time.Now()

	h.logger.Info("Card payment successful",
		zap.String("invoice", inv.InvoiceID), zap.String("paymentIntent", pi.ID))
	return inv, nil
}

func (h *StripePaymentHandler) processBalancePayment(req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	learner, err := h.learnerRepo.GetByID(req.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learner: %w", err)
	}
	if learner == nil {
		return nil, fmt.Errorf("learner %s not found", req.LearnerID)
	}
	if learner.Balance < req.Amount {
		return nil, ErrInsufficientBalance
	}

	if _, err := h.learnerRepo.AdjustBalance(req.LearnerID, -req.Amount); err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	inv.Status = "paid"
	inv.UpdatedAt = time.Now()

	h.logger.Info("Balance payment successful",
		zap.String("invoice", inv.InvoiceID), zap.Float64("amount", req.Amount))
	return inv, nil
}

// toMinorUnits converts a decimal amount to the gateway's integer minor units
// (pence for GBP).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
