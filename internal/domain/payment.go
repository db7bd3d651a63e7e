package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentAmountInvalid     = errors.New("amount paid must be positive")
	ErrPaymentRemainingNegative = errors.New("remaining amount cannot be negative")
	ErrPaymentExtraNegative     = errors.New("extra amount cannot be negative")
	ErrPaymentMonthInvalid      = errors.New("payment month must be in YYYY-MM format")
	ErrPaymentPayableClosed     = errors.New("cannot record a payment on a closed payable")
	ErrPaymentPartiallyRecorded = errors.New("payment recorded but payable update failed")
)

// Payment is an immutable record of one installment paid against a payable.
// RemainingAmount is the payable's balance right after this payment.
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	PayableID       uuid.UUID       `json:"monthlyPayableId"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	ExtraAmount     decimal.Decimal `json:"extraAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	PayableTitle    string          `json:"payableTitle,omitempty"`
	PayableType     PayableType     `json:"payableType,omitempty"`
	PayablePayee    string          `json:"payablePayee,omitempty"`
}

// RecordPaymentInput is what the mark-as-paid form submits
type RecordPaymentInput struct {
	AmountPaid      decimal.Decimal
	RemainingAmount decimal.Decimal
	ExtraAmount     decimal.Decimal
	// Month is the YYYY-MM the payment belongs to; empty means the current month
	Month string
}

func (in *RecordPaymentInput) Validate() error {
	if in.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return ErrPaymentAmountInvalid
	}
	if in.RemainingAmount.IsNegative() {
		return ErrPaymentRemainingNegative
	}
	if in.ExtraAmount.IsNegative() {
		return ErrPaymentExtraNegative
	}
	return nil
}

// PaymentDefaults pre-fills the mark-as-paid form
type PaymentDefaults struct {
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	ExtraAmount     decimal.Decimal `json:"extraAmount"`
}

type PaymentRepository interface {
	Create(payment *Payment) (*Payment, error)
	GetByUser(userID uuid.UUID) ([]*Payment, error)
	GetByUserBetween(userID uuid.UUID, from, to time.Time) ([]*Payment, error)
	GetByPayable(userID uuid.UUID, payableID uuid.UUID) ([]*Payment, error)
	GetPaymentMonths(userID uuid.UUID) ([]time.Time, error)
}
