package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthFixture struct {
	service  *service.DashboardService
	payables *testutil.MockPayableRepository
	payments *testutil.MockPaymentRepository
	userID   uuid.UUID
}

// newMonthFixture seeds an EMI on the 15th paid in May 2025 and two bills of 1200 and 800
func newMonthFixture() *monthFixture {
	payableRepo := testutil.NewMockPayableRepository()
	paymentRepo := testutil.NewMockPaymentRepository(payableRepo)
	userID := uuid.New()

	phone := seedPayable(payableRepo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")
	seedPayable(payableRepo, userID, "Electricity", domain.PayableTypeBill, 5, 1200, 0, "BESCOM")
	seedPayable(payableRepo, userID, "Water", domain.PayableTypeBill, 25, 800, 0, "")

	paymentRepo.AddPayment(&domain.Payment{
		UserID:      userID,
		PayableID:   phone.ID,
		AmountPaid:  decimal.NewFromInt(5000),
		PaymentDate: time.Date(2025, time.May, 15, 8, 0, 0, 0, time.UTC),
	})
	paymentRepo.AddPayment(&domain.Payment{
		UserID:      userID,
		PayableID:   phone.ID,
		AmountPaid:  decimal.NewFromInt(5000),
		PaymentDate: time.Date(2024, time.October, 15, 8, 0, 0, 0, time.UTC),
	})

	return &monthFixture{
		service:  service.NewDashboardService(payableRepo, paymentRepo, 31),
		payables: payableRepo,
		payments: paymentRepo,
		userID:   userID,
	}
}

func TestGetByYearMonth(t *testing.T) {
	f := newMonthFixture()
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/months/2025/5", "")
	setupAuthContext(c, f.userID, "")
	setParams(c, []string{"year", "month"}, "2025", "5")

	require.NoError(t, h.GetByYearMonth(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[MonthViewResponse](t, rec)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 5, resp.Month)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "2025-05-05", resp.Groups[0].DueDate)
	assert.Equal(t, "2025-05-15", resp.Groups[1].DueDate)
	assert.True(t, resp.Groups[1].Items[0].Paid)
	assert.False(t, resp.Groups[2].Items[0].Paid)

	assert.Equal(t, Money{Amount: "7000", Formatted: "₹7,000"}, resp.Totals.TotalPayable)
	assert.Equal(t, "5000", resp.Totals.TotalPaid.Amount)
	assert.Equal(t, "2000", resp.Totals.TotalYetToPay.Amount)
	assert.Equal(t, "2000", resp.Totals.TotalBills.Amount)
	assert.Equal(t, 2, resp.Totals.UnpaidCount)
}

func TestGetByYearMonth_PayeeFilter(t *testing.T) {
	f := newMonthFixture()
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/months/2025/5?payee=BESCOM", "")
	setupAuthContext(c, f.userID, "")
	setParams(c, []string{"year", "month"}, "2025", "5")

	require.NoError(t, h.GetByYearMonth(c))
	resp := decodeJSON[MonthViewResponse](t, rec)
	assert.Equal(t, "BESCOM", resp.Payee)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "Electricity", resp.Groups[0].Items[0].Title)
}

func TestGetByYearMonth_InvalidParams(t *testing.T) {
	tests := []struct {
		year, month string
		field       string
	}{
		{"abc", "5", "year"},
		{"1999", "5", "year"},
		{"2025", "0", "month"},
		{"2025", "13", "month"},
	}

	for _, tt := range tests {
		t.Run(tt.year+"-"+tt.month, func(t *testing.T) {
			h := NewMonthHandler(newMonthFixture().service)
			c, rec := newContext(http.MethodGet, "/", "")
			setupAuthContext(c, uuid.New(), "")
			setParams(c, []string{"year", "month"}, tt.year, tt.month)

			require.NoError(t, h.GetByYearMonth(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.field}, fieldNames(decodeJSON[ProblemDetails](t, rec)))
		})
	}
}

func TestGetByYearMonth_RepositoryError(t *testing.T) {
	f := newMonthFixture()
	f.payables.GetAllByUserFn = func(uuid.UUID) ([]*domain.Payable, error) {
		return nil, errors.New("database unavailable")
	}
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/", "")
	setupAuthContext(c, f.userID, "")
	setParams(c, []string{"year", "month"}, "2025", "5")

	require.NoError(t, h.GetByYearMonth(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCurrent(t *testing.T) {
	f := newMonthFixture()
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/months/current", "")
	setupAuthContext(c, f.userID, "")

	require.NoError(t, h.GetCurrent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	now := time.Now().UTC()
	resp := decodeJSON[MonthViewResponse](t, rec)
	assert.Equal(t, now.Year(), resp.Year)
	assert.Equal(t, int(now.Month()), resp.Month)
	assert.Len(t, resp.Groups, 3)
}

func TestGetUpcoming(t *testing.T) {
	f := newMonthFixture()
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/months/upcoming", "")
	setupAuthContext(c, f.userID, "")

	require.NoError(t, h.GetUpcoming(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[UpcomingResponse](t, rec)
	// every emi day falls due within a 31 day horizon
	items := 0
	for _, g := range resp.Groups {
		items += len(g.Items)
	}
	assert.Equal(t, 3, items)
	require.NotNil(t, resp.NextDue)
	assert.Equal(t, resp.Groups[0].DueDate, resp.NextDue.DueDate)
	assert.GreaterOrEqual(t, resp.DaysUntilNextDue, 0)
}

func TestGetAvailableMonths(t *testing.T) {
	f := newMonthFixture()
	h := NewMonthHandler(f.service)

	c, rec := newContext(http.MethodGet, "/api/v1/payments/months", "")
	setupAuthContext(c, f.userID, "")

	require.NoError(t, h.GetAvailableMonths(c))
	months := decodeJSON[[]string](t, rec)

	require.NotEmpty(t, months)
	assert.Equal(t, time.Now().UTC().Format("2006-01"), months[0], "the current month is always listed first")
	assert.Contains(t, months, "2025-05")
	assert.Contains(t, months, "2024-10")
}

func TestMonthHandler_Unauthorized(t *testing.T) {
	h := NewMonthHandler(newMonthFixture().service)

	c, rec := newContext(http.MethodGet, "/", "")
	require.NoError(t, h.GetUpcoming(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
