package handler

import (
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

// newChartHandler seeds payments this month and last month so the six month window covers them
func newChartHandler() (*ChartHandler, uuid.UUID) {
	payableRepo := testutil.NewMockPayableRepository()
	paymentRepo := testutil.NewMockPaymentRepository(payableRepo)
	userID := uuid.New()

	phone := seedPayable(payableRepo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")
	card := seedPayable(payableRepo, userID, "Credit Card", domain.PayableTypeCreditCard, 3, 3000, 20000, "SBI")

	thisMonth := time.Now().UTC()
	lastMonth := time.Date(thisMonth.Year(), thisMonth.Month(), 1, 12, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	record := func(p *domain.Payable, paid, extra, remaining int64, at time.Time) {
		// Create fills the joined payable columns
		_, _ = paymentRepo.Create(&domain.Payment{
			UserID:          userID,
			PayableID:       p.ID,
			AmountPaid:      decimal.NewFromInt(paid),
			ExtraAmount:     decimal.NewFromInt(extra),
			RemainingAmount: decimal.NewFromInt(remaining),
			PaymentDate:     at,
		})
	}
	record(phone, 5000, 0, 45000, lastMonth)
	record(phone, 6000, 1000, 39000, thisMonth)
	record(card, 3000, 500, 17000, thisMonth)

	return NewChartHandler(service.NewChartService(paymentRepo)), userID
}

func TestGetPaymentsByType(t *testing.T) {
	h, userID := newChartHandler()
	c, rec := newContext(http.MethodGet, "/api/v1/charts/payments-by-type", "")
	setupAuthContext(c, userID, "")

	require.NoError(t, h.GetPaymentsByType(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[ChartResponse](t, rec)
	require.Len(t, resp.Months, 6)
	assert.Equal(t, time.Now().UTC().Format("Jan 2006"), resp.Months[5])

	total := resp.Series[len(resp.Series)-1]
	assert.Equal(t, domain.SeriesTotal, total.Key)
	assert.Equal(t, []string{"0", "0", "0", "0", "5000", "9000"}, total.Values)
	assert.Equal(t, Money{Amount: "14000", Formatted: "₹14,000"}, total.Total)

	assert.Equal(t, "EMI", resp.Series[0].Label)
	assert.Equal(t, "11000", resp.Series[0].Total.Amount)
}

func TestGetRemainingByType(t *testing.T) {
	h, userID := newChartHandler()
	c, rec := newContext(http.MethodGet, "/api/v1/charts/remaining-by-type", "")
	setupAuthContext(c, userID, "")

	require.NoError(t, h.GetRemainingByType(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[ChartResponse](t, rec)
	require.Len(t, resp.Series, 2)
	assert.Equal(t, "45000", resp.Series[0].Values[4])
	assert.Equal(t, "39000", resp.Series[0].Values[5])
}

func TestGetExtraPaid(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		extra     string
		principal string
	}{
		{"all payees", "/api/v1/charts/extra-paid", "1500", "9000"},
		{"single payee", "/api/v1/charts/extra-paid?payee=HDFC", "1000", "6000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, userID := newChartHandler()
			c, rec := newContext(http.MethodGet, tt.target, "")
			setupAuthContext(c, userID, "")

			require.NoError(t, h.GetExtraPaid(c))
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decodeJSON[ExtraPaidResponse](t, rec)
			require.Len(t, resp.Chart.Series, 1)
			assert.Equal(t, tt.extra, resp.Chart.Series[0].Values[5])
			assert.Equal(t, tt.extra, resp.CurrentSplit.Extra.Amount)
			assert.Equal(t, tt.principal, resp.CurrentSplit.Principal.Amount)
		})
	}
}

func TestGetTotalDebt(t *testing.T) {
	h, userID := newChartHandler()
	c, rec := newContext(http.MethodGet, "/api/v1/charts/total-debt?payee=HDFC", "")
	setupAuthContext(c, userID, "")

	require.NoError(t, h.GetTotalDebt(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[ChartResponse](t, rec)
	require.Len(t, resp.Series, 1)
	assert.Equal(t, []string{"0", "0", "0", "0", "45000", "39000"}, resp.Series[0].Values)
}

func TestChartHandler_Unauthorized(t *testing.T) {
	h, _ := newChartHandler()
	c, rec := newContext(http.MethodGet, "/", "")

	require.NoError(t, h.GetTotalDebt(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
