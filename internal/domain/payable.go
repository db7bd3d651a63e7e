package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPayableNotFound          = errors.New("payable not found")
	ErrPayableTitleEmpty        = errors.New("title is required")
	ErrPayableTitleTooLong      = errors.New("title must be 200 characters or less")
	ErrPayableTypeRequired      = errors.New("type is required")
	ErrPayableTypeInvalid       = errors.New("type is not a known payable type")
	ErrPayablePayTypeInvalid    = errors.New("pay type must be auto_debit or manual")
	ErrPayableAmountInvalid     = errors.New("amount values must be positive")
	ErrPayableRemainingNegative = errors.New("remaining amount cannot be negative")
	ErrPayableExtraNegative     = errors.New("extra pay cannot be negative")
	ErrPayableInterestNegative  = errors.New("interest per month cannot be negative")
	ErrPayableEmiDayInvalid     = errors.New("emi day must be between 1 and 31")
	ErrPayableDateRangeInvalid  = errors.New("end date cannot be before start date")
	ErrPayableAlreadyClosed     = errors.New("payable is already closed")
)

// MaxPayableTitleLength bounds the payable title
const MaxPayableTitleLength = 200

// PayableType is the category of a financial obligation
type PayableType string

const (
	PayableTypeEMI        PayableType = "emi"
	PayableTypeLoan       PayableType = "loan"
	PayableTypeCreditCard PayableType = "credit_card"
	PayableTypePayLater   PayableType = "pay_later"
	PayableTypeBill       PayableType = "bill"
	PayableTypeRent       PayableType = "rent"
)

// PayableTypes lists every payable type in display order
var PayableTypes = []PayableType{
	PayableTypeEMI,
	PayableTypeLoan,
	PayableTypeCreditCard,
	PayableTypePayLater,
	PayableTypeBill,
	PayableTypeRent,
}

// Label returns the name shown on dashboards and charts
func (t PayableType) Label() string {
	switch t {
	case PayableTypeEMI:
		return "EMI"
	case PayableTypeLoan:
		return "Loan Interest"
	case PayableTypeCreditCard:
		return "Credit Card"
	case PayableTypePayLater:
		return "Pay Later"
	case PayableTypeBill:
		return "Bills"
	case PayableTypeRent:
		return "Rent"
	}
	return string(t)
}

// FormLabel returns the name shown in the payable form picker
func (t PayableType) FormLabel() string {
	switch t {
	case PayableTypeLoan:
		return "Loan On Interest"
	case PayableTypeBill:
		return "Bill"
	}
	return t.Label()
}

// IsValid reports whether t is one of the known payable types
func (t PayableType) IsValid() bool {
	switch t {
	case PayableTypeEMI, PayableTypeLoan, PayableTypeCreditCard, PayableTypePayLater, PayableTypeBill, PayableTypeRent:
		return true
	}
	return false
}

// CountsAsDebt reports whether the remaining amount of this type adds to total debt.
// Bills, rent and interest-only loans are excluded.
func (t PayableType) CountsAsDebt() bool {
	switch t {
	case PayableTypeBill, PayableTypeRent, PayableTypeLoan:
		return false
	}
	return true
}

// PayType is how an installment is paid
type PayType string

const (
	PayTypeAutoDebit PayType = "auto_debit"
	PayTypeManual    PayType = "manual"
)

// Label returns the display name of the pay type
func (p PayType) Label() string {
	switch p {
	case PayTypeAutoDebit:
		return "Auto Debit"
	case PayTypeManual:
		return "Manual"
	}
	return string(p)
}

// IsValid reports whether p is a known pay type
func (p PayType) IsValid() bool {
	return p == PayTypeAutoDebit || p == PayTypeManual
}

// Payable statuses
const (
	PayableStatusActive = "active"
	PayableStatusClosed = "closed"
)

// Payable is a recurring financial obligation with a monthly installment.
// EmiAmount, RemainingAmount and ExtraPay are a snapshot refreshed whenever a payment is recorded.
type Payable struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	Title            string          `json:"title"`
	Type             PayableType     `json:"type"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	EmiAmount        decimal.Decimal `json:"emiAmount"`
	EmiDay           int             `json:"emiDay"`
	ExtraPay         decimal.Decimal `json:"extraPay"`
	InterestPerMonth decimal.Decimal `json:"interestPerMonth"`
	Payee            string          `json:"payee"`
	PaymentBank      string          `json:"paymentBank"`
	PayType          PayType         `json:"payType"`
	StartDate        *time.Time      `json:"startDate,omitempty"`
	EndDate          *time.Time      `json:"endDate,omitempty"`
	IsClosed         bool            `json:"isClosed"`
	Status           string          `json:"status"`
	ClosedAt         *time.Time      `json:"closedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Validate checks the payable as submitted from the form
func (p *Payable) Validate() error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return ErrPayableTitleEmpty
	}
	if len(title) > MaxPayableTitleLength {
		return ErrPayableTitleTooLong
	}
	if p.Type == "" {
		return ErrPayableTypeRequired
	}
	if !p.Type.IsValid() {
		return ErrPayableTypeInvalid
	}
	if p.PayType != "" && !p.PayType.IsValid() {
		return ErrPayablePayTypeInvalid
	}
	if p.TotalAmount.LessThanOrEqual(decimal.Zero) || p.EmiAmount.LessThanOrEqual(decimal.Zero) {
		return ErrPayableAmountInvalid
	}
	if p.RemainingAmount.IsNegative() {
		return ErrPayableRemainingNegative
	}
	if p.ExtraPay.IsNegative() {
		return ErrPayableExtraNegative
	}
	if p.InterestPerMonth.IsNegative() {
		return ErrPayableInterestNegative
	}
	if p.EmiDay < 1 || p.EmiDay > 31 {
		return ErrPayableEmiDayInvalid
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ErrPayableDateRangeInvalid
	}
	return nil
}

// ResolveDueDate returns the next due date on or after ref's calendar day.
// An emi day past the end of the target month is clamped to its last day.
func ResolveDueDate(emiDay int, ref time.Time) time.Time {
	ref = ref.UTC()
	if emiDay >= ref.Day() {
		return util.CalculateActualDate(ref.Year(), ref.Month(), emiDay)
	}
	next := util.AddMonths(ref, 1)
	return util.CalculateActualDate(next.Year(), next.Month(), emiDay)
}

// NextDueDate resolves the payable's due date relative to ref
func (p *Payable) NextDueDate(ref time.Time) time.Time {
	return ResolveDueDate(p.EmiDay, ref)
}

// DueDateInMonth returns the payable's due date inside the given month
func (p *Payable) DueDateInMonth(year int, month time.Month) time.Time {
	return util.CalculateActualDate(year, month, p.EmiDay)
}

// IsOpen reports whether the payable has not been closed
func (p *Payable) IsOpen() bool {
	return !p.IsClosed
}

// RunsInMonth reports whether the payable's start/end window overlaps the month starting at monthStart
func (p *Payable) RunsInMonth(monthStart time.Time) bool {
	monthEnd := util.EndOfMonth(monthStart)
	if p.StartDate != nil && util.StartOfDay(*p.StartDate).After(monthEnd) {
		return false
	}
	if p.EndDate != nil && util.StartOfDay(*p.EndDate).Before(monthStart) {
		return false
	}
	return true
}

// DefaultRemainingAfterPayment is the remaining balance suggested when marking the payable paid.
// Only EMIs are reduced by the installment; other types keep their balance.
func (p *Payable) DefaultRemainingAfterPayment() decimal.Decimal {
	if p.Type == PayableTypeEMI {
		return p.RemainingAmount.Sub(p.EmiAmount)
	}
	return p.RemainingAmount
}

// Close marks the payable closed at the given time
func (p *Payable) Close(at time.Time) error {
	if p.IsClosed {
		return ErrPayableAlreadyClosed
	}
	p.IsClosed = true
	p.Status = PayableStatusClosed
	p.ClosedAt = &at
	return nil
}

// String is used in log lines
func (p *Payable) String() string {
	return fmt.Sprintf("%s (%s)", p.Title, p.ID)
}

// Payable list sort keys
const (
	PayableSortEmiDay    = "emi_day"
	PayableSortRemaining = "remaining_amount"
)

// PayablePageSize is the number of payables returned per list page
const PayablePageSize = 50

// PayableFilter narrows a payable listing
type PayableFilter struct {
	Payee         string
	SortBy        string
	IncludeClosed bool
	Limit         int
	Offset        int
}

// HasPayeeFilter reports whether the filter restricts to a single payee
func HasPayeeFilter(payee string) bool {
	return payee != "" && !strings.EqualFold(payee, "all")
}

type PayableRepository interface {
	Create(payable *Payable) (*Payable, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Payable, error)
	List(userID uuid.UUID, filter PayableFilter) ([]*Payable, error)
	GetOpenByUser(userID uuid.UUID) ([]*Payable, error)
	GetAllByUser(userID uuid.UUID) ([]*Payable, error)
	ListPayees(userID uuid.UUID) ([]string, error)
	Update(payable *Payable) (*Payable, error)
	UpdateSnapshot(userID uuid.UUID, id uuid.UUID, emiAmount, remainingAmount, extraPay decimal.Decimal) (*Payable, error)
	Close(userID uuid.UUID, id uuid.UUID, closedAt time.Time) (*Payable, error)
}
