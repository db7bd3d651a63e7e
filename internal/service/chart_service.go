package service

import (
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
)

// ExtraPaidReport is the extra-paid trend together with this month's installment/extra split
type ExtraPaidReport struct {
	Chart        domain.MonthlyChart
	CurrentSplit domain.PrincipalExtraSplit
}

// ChartService builds the monthly trend charts over the last six months of payments
type ChartService struct {
	paymentRepo domain.PaymentRepository
	now         func() time.Time
}

// NewChartService creates a new ChartService
func NewChartService(paymentRepo domain.PaymentRepository) *ChartService {
	return &ChartService{paymentRepo: paymentRepo, now: time.Now}
}

// PaymentsByType sums amounts paid per type per month
func (s *ChartService) PaymentsByType(userID uuid.UUID) (*domain.MonthlyChart, error) {
	months, payments, err := s.window(userID)
	if err != nil {
		return nil, err
	}
	chart := aggregate.PaymentsByTypeChart(payments, months)
	return &chart, nil
}

// RemainingByType sums recorded remaining balances per type per month
func (s *ChartService) RemainingByType(userID uuid.UUID) (*domain.MonthlyChart, error) {
	months, payments, err := s.window(userID)
	if err != nil {
		return nil, err
	}
	chart := aggregate.RemainingByTypeChart(payments, months)
	return &chart, nil
}

// ExtraPaid sums extra amounts per month, optionally for one payee
func (s *ChartService) ExtraPaid(userID uuid.UUID, payee string) (*ExtraPaidReport, error) {
	months, payments, err := s.window(userID)
	if err != nil {
		return nil, err
	}
	filtered := filterPaymentsByPayee(payments, payee)
	return &ExtraPaidReport{
		Chart:        aggregate.ExtraPaidChart(payments, months, payee),
		CurrentSplit: aggregate.SplitPrincipalExtra(filtered, months[len(months)-1]),
	}, nil
}

// TotalDebt sums recorded remaining balances per month, optionally for one payee
func (s *ChartService) TotalDebt(userID uuid.UUID, payee string) (*domain.MonthlyChart, error) {
	months, payments, err := s.window(userID)
	if err != nil {
		return nil, err
	}
	chart := aggregate.TotalDebtChart(payments, months, payee)
	return &chart, nil
}

func (s *ChartService) window(userID uuid.UUID) ([]time.Time, []*domain.Payment, error) {
	months := aggregate.ChartWindow(s.now().UTC())
	payments, err := s.paymentRepo.GetByUserBetween(userID, months[0], endOfMonthInclusive(months[len(months)-1]))
	if err != nil {
		return nil, nil, err
	}
	return months, payments, nil
}

func filterPaymentsByPayee(payments []*domain.Payment, payee string) []*domain.Payment {
	if !domain.HasPayeeFilter(payee) {
		return payments
	}
	filtered := make([]*domain.Payment, 0, len(payments))
	for _, p := range payments {
		if p.PayablePayee == payee {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
