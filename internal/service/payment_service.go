package service

import (
	"fmt"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/dafibh/paydue/paydue-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecordPaymentResult is the outcome of marking a payable paid.
// Payable is nil when the snapshot update failed after the payment was stored.
type RecordPaymentResult struct {
	Payment *domain.Payment
	Payable *domain.Payable
}

// PaymentService records payments against payables
type PaymentService struct {
	payableRepo    domain.PayableRepository
	paymentRepo    domain.PaymentRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payableRepo domain.PayableRepository, paymentRepo domain.PaymentRepository) *PaymentService {
	return &PaymentService{
		payableRepo: payableRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PaymentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// PaymentDefaults returns the values the mark-as-paid form starts with
func (s *PaymentService) PaymentDefaults(userID, payableID uuid.UUID) (*domain.PaymentDefaults, error) {
	payable, err := s.payableRepo.GetByID(userID, payableID)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentDefaults{
		AmountPaid:      payable.EmiAmount,
		RemainingAmount: payable.DefaultRemainingAfterPayment(),
		ExtraAmount:     payable.ExtraPay,
	}, nil
}

// RecordPayment stores a payment and then refreshes the payable's snapshot amounts.
// The two writes are not atomic. When the second one fails the stored payment is
// returned together with ErrPaymentPartiallyRecorded.
// Calling it twice records two payments; there is no per-month uniqueness.
func (s *PaymentService) RecordPayment(userID, payableID uuid.UUID, input domain.RecordPaymentInput) (*RecordPaymentResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	paymentDate, err := resolvePaymentDate(input.Month, now)
	if err != nil {
		return nil, err
	}

	payable, err := s.payableRepo.GetByID(userID, payableID)
	if err != nil {
		return nil, err
	}
	if payable.IsClosed {
		return nil, domain.ErrPaymentPayableClosed
	}

	payment, err := s.paymentRepo.Create(&domain.Payment{
		UserID:          userID,
		PayableID:       payableID,
		AmountPaid:      input.AmountPaid,
		ExtraAmount:     input.ExtraAmount,
		RemainingAmount: input.RemainingAmount,
		PaymentDate:     paymentDate,
	})
	if err != nil {
		log.Error().Err(err).Str("payable_id", payableID.String()).Msg("Failed to create payment")
		return nil, err
	}
	s.publishEvent(userID, websocket.PaymentCreated(payment))

	updated, err := s.payableRepo.UpdateSnapshot(userID, payableID, input.AmountPaid, input.RemainingAmount, input.ExtraAmount)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("payable_id", payableID.String()).
			Str("payment_id", payment.ID.String()).
			Msg("Payment stored but payable snapshot update failed")
		return &RecordPaymentResult{Payment: payment}, fmt.Errorf("%w: %v", domain.ErrPaymentPartiallyRecorded, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("payable_id", payableID.String()).
		Str("amount_paid", input.AmountPaid.String()).
		Msg("Payment recorded")
	s.publishEvent(userID, websocket.PayableUpdated(updated))

	return &RecordPaymentResult{Payment: payment, Payable: updated}, nil
}

// resolvePaymentDate dates a payment for the current month at now, and a
// backfilled payment on the last day of its month
func resolvePaymentDate(month string, now time.Time) (time.Time, error) {
	if month == "" {
		return now, nil
	}
	target, err := util.ParseMonthKey(month)
	if err != nil {
		return time.Time{}, domain.ErrPaymentMonthInvalid
	}
	if target.Year() == now.Year() && target.Month() == now.Month() {
		return now, nil
	}
	return util.EndOfMonth(target), nil
}
