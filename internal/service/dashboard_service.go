package service

import (
	"context"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Breakdown dimensions
const (
	BreakdownByType  = "type"
	BreakdownByPayee = "payee"
	BreakdownByMonth = "month"
)

// DashboardService builds the grouped month, upcoming and summary views
type DashboardService struct {
	payableRepo domain.PayableRepository
	paymentRepo domain.PaymentRepository
	horizonDays int
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(payableRepo domain.PayableRepository, paymentRepo domain.PaymentRepository, horizonDays int) *DashboardService {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultUpcomingHorizonDays
	}
	return &DashboardService{
		payableRepo: payableRepo,
		paymentRepo: paymentRepo,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// GetMonthView groups everything due in the given month by emi day
func (s *DashboardService) GetMonthView(ctx context.Context, userID uuid.UUID, year int, month time.Month, payee string) (*domain.MonthView, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	payables, payments, err := s.load(ctx, userID, monthStart, endOfMonthInclusive(monthStart))
	if err != nil {
		return nil, err
	}

	view := aggregate.GroupMonth(payables, payments, year, month, payee)
	return &view, nil
}

// GetUpcoming groups open payables due within the configured horizon
func (s *DashboardService) GetUpcoming(ctx context.Context, userID uuid.UUID, payee string) (*domain.UpcomingView, error) {
	now := s.now().UTC()
	from, to := s.upcomingPaymentWindow(now)
	payables, payments, err := s.load(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	view := aggregate.GroupUpcoming(payables, payments, now, s.horizonDays, payee)
	return &view, nil
}

// GetSummary returns the home screen: the current month, what is coming up and the debt split by type
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, error) {
	now := s.now().UTC()
	monthStart := util.StartOfMonth(now)
	from, to := s.upcomingPaymentWindow(now)
	if monthStart.Before(from) {
		from = monthStart
	}

	payables, payments, err := s.load(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Month:     aggregate.GroupMonth(payables, payments, now.Year(), now.Month(), ""),
		Upcoming:  aggregate.GroupUpcoming(payables, payments, now, s.horizonDays, ""),
		ByType:    aggregate.BreakdownByType(payables, now),
		OpenCount: len(aggregate.OpenPayables(payables)),
	}, nil
}

// GetBreakdown splits open debt by type or by payee, or sums recorded payments by month
func (s *DashboardService) GetBreakdown(userID uuid.UUID, by string) (*domain.Breakdown, error) {
	if by == BreakdownByMonth {
		payments, err := s.paymentRepo.GetByUser(userID)
		if err != nil {
			return nil, err
		}
		breakdown := aggregate.PaymentsByMonth(payments)
		return &breakdown, nil
	}

	payables, err := s.payableRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}

	var breakdown domain.Breakdown
	if by == BreakdownByPayee {
		breakdown = aggregate.BreakdownByPayee(payables, s.now().UTC())
	} else {
		breakdown = aggregate.BreakdownByType(payables, s.now().UTC())
	}
	return &breakdown, nil
}

// GetAvailableMonths lists the months that have payments plus the current one, newest first
func (s *DashboardService) GetAvailableMonths(userID uuid.UUID) ([]string, error) {
	months, err := s.paymentRepo.GetPaymentMonths(userID)
	if err != nil {
		return nil, err
	}
	return aggregate.AvailableMonths(months, s.now().UTC()), nil
}

// load fetches all payables and the payments dated between from and to in parallel
func (s *DashboardService) load(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Payable, []*domain.Payment, error) {
	var payables []*domain.Payable
	var payments []*domain.Payment

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		payables, err = s.payableRepo.GetAllByUser(userID)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		payments, err = s.paymentRepo.GetByUserBetween(userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return payables, payments, nil
}

// upcomingPaymentWindow covers every month the upcoming horizon can touch
func (s *DashboardService) upcomingPaymentWindow(now time.Time) (time.Time, time.Time) {
	today := util.StartOfDay(now)
	until := today.AddDate(0, 0, s.horizonDays)
	// due dates resolve at most one month past the horizon end
	return util.StartOfMonth(today), endOfMonthInclusive(util.AddMonths(until, 1))
}

// endOfMonthInclusive is the last instant of t's month
func endOfMonthInclusive(t time.Time) time.Time {
	return util.AddMonths(t, 1).Add(-time.Nanosecond)
}
