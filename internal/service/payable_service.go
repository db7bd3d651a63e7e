package service

import (
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PayableInput is the payable form as submitted by the client
type PayableInput struct {
	Title            string
	Type             domain.PayableType
	TotalAmount      decimal.Decimal
	RemainingAmount  *decimal.Decimal
	EmiAmount        decimal.Decimal
	EmiDay           int
	ExtraPay         decimal.Decimal
	InterestPerMonth decimal.Decimal
	Payee            string
	PaymentBank      string
	PayType          domain.PayType
	StartDate        *time.Time
	EndDate          *time.Time
}

// ListPayablesParams selects one page of the payables list
type ListPayablesParams struct {
	Payee         string
	SortBy        string
	Page          int
	IncludeClosed bool
}

// PayablePage is one page of payables
type PayablePage struct {
	Items   []*domain.Payable
	Page    int
	HasMore bool
}

// PaymentHistory is the payment trail of a single payable
type PaymentHistory struct {
	Payable  *domain.Payable
	Payments []*domain.Payment
	Points   []domain.PaymentHistoryPoint
}

// PayableService handles payable business logic
type PayableService struct {
	payableRepo    domain.PayableRepository
	paymentRepo    domain.PaymentRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewPayableService creates a new PayableService
func NewPayableService(payableRepo domain.PayableRepository, paymentRepo domain.PaymentRepository) *PayableService {
	return &PayableService{
		payableRepo: payableRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PayableService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PayableService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreatePayable validates and stores a new payable.
// Remaining defaults to the total and pay type defaults to manual.
func (s *PayableService) CreatePayable(userID uuid.UUID, input PayableInput) (*domain.Payable, error) {
	payable := input.toPayable(userID)
	if err := payable.Validate(); err != nil {
		return nil, err
	}

	created, err := s.payableRepo.Create(payable)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create payable")
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("payable_id", created.ID.String()).Msg("Payable created")
	s.publishEvent(userID, websocket.PayableCreated(created))
	return created, nil
}

// UpdatePayable replaces the editable fields of an existing payable
func (s *PayableService) UpdatePayable(userID, id uuid.UUID, input PayableInput) (*domain.Payable, error) {
	existing, err := s.payableRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	payable := input.toPayable(userID)
	payable.ID = existing.ID
	if input.RemainingAmount == nil {
		payable.RemainingAmount = existing.RemainingAmount
	}
	if err := payable.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.payableRepo.Update(payable)
	if err != nil {
		log.Error().Err(err).Str("payable_id", id.String()).Msg("Failed to update payable")
		return nil, err
	}

	s.publishEvent(userID, websocket.PayableUpdated(updated))
	return updated, nil
}

// GetPayable retrieves a payable owned by the user
func (s *PayableService) GetPayable(userID, id uuid.UUID) (*domain.Payable, error) {
	return s.payableRepo.GetByID(userID, id)
}

// ListPayables returns one page of the user's payables
func (s *PayableService) ListPayables(userID uuid.UUID, params ListPayablesParams) (*PayablePage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	sortBy := params.SortBy
	if sortBy != domain.PayableSortRemaining {
		sortBy = domain.PayableSortEmiDay
	}

	// one extra row tells whether another page exists
	items, err := s.payableRepo.List(userID, domain.PayableFilter{
		Payee:         params.Payee,
		SortBy:        sortBy,
		IncludeClosed: params.IncludeClosed,
		Limit:         domain.PayablePageSize + 1,
		Offset:        (page - 1) * domain.PayablePageSize,
	})
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > domain.PayablePageSize
	if hasMore {
		items = items[:domain.PayablePageSize]
	}
	return &PayablePage{Items: items, Page: page, HasMore: hasMore}, nil
}

// ListPayees returns the distinct payees used by the user's payables
func (s *PayableService) ListPayees(userID uuid.UUID) ([]string, error) {
	return s.payableRepo.ListPayees(userID)
}

// ClosePayable marks a payable closed. Closing twice returns ErrPayableAlreadyClosed.
func (s *PayableService) ClosePayable(userID, id uuid.UUID) (*domain.Payable, error) {
	closed, err := s.payableRepo.Close(userID, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("payable_id", id.String()).Msg("Payable closed")
	s.publishEvent(userID, websocket.PayableClosed(closed))
	return closed, nil
}

// GetPaymentHistory returns every payment recorded against a payable, oldest first
func (s *PayableService) GetPaymentHistory(userID, id uuid.UUID) (*PaymentHistory, error) {
	payable, err := s.payableRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetByPayable(userID, id)
	if err != nil {
		return nil, err
	}

	return &PaymentHistory{
		Payable:  payable,
		Payments: payments,
		Points:   aggregate.PaymentHistory(payments),
	}, nil
}

func (in PayableInput) toPayable(userID uuid.UUID) *domain.Payable {
	remaining := in.TotalAmount
	if in.RemainingAmount != nil {
		remaining = *in.RemainingAmount
	}
	payType := in.PayType
	if payType == "" {
		payType = domain.PayTypeManual
	}

	return &domain.Payable{
		UserID:           userID,
		Title:            strings.TrimSpace(in.Title),
		Type:             in.Type,
		TotalAmount:      in.TotalAmount,
		RemainingAmount:  remaining,
		EmiAmount:        in.EmiAmount,
		EmiDay:           in.EmiDay,
		ExtraPay:         in.ExtraPay,
		InterestPerMonth: in.InterestPerMonth,
		Payee:            strings.TrimSpace(in.Payee),
		PaymentBank:      strings.TrimSpace(in.PaymentBank),
		PayType:          payType,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Status:           domain.PayableStatusActive,
	}
}
