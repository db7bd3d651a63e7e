package service

import (
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartFixture() (*ChartService, uuid.UUID) {
	payableRepo := testutil.NewMockPayableRepository()
	paymentRepo := testutil.NewMockPaymentRepository(payableRepo)
	svc := NewChartService(paymentRepo)
	svc.now = fixedClock(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))
	userID := uuid.New()

	phone := seedPayable(payableRepo, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 40000)
	phone.Payee = "HDFC"
	card := seedPayable(payableRepo, userID, "Card", domain.PayableTypeCreditCard, 3, 2000, 10000)
	card.Payee = "ICICI"

	record := func(p *domain.Payable, paid, extra, remaining int64, at time.Time) {
		_, _ = paymentRepo.Create(&domain.Payment{
			UserID: userID, PayableID: p.ID,
			AmountPaid: dec(paid), ExtraAmount: dec(extra), RemainingAmount: dec(remaining),
			PaymentDate: at,
		})
	}
	record(phone, 5000, 0, 45000, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC))
	record(phone, 6000, 1000, 39000, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))
	record(card, 2000, 500, 10000, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC))
	record(card, 9999, 0, 0, time.Date(2024, 10, 3, 0, 0, 0, 0, time.UTC))

	return svc, userID
}

func TestPaymentsByType(t *testing.T) {
	svc, userID := newChartFixture()

	chart, err := svc.PaymentsByType(userID)
	require.NoError(t, err)
	require.Len(t, chart.Months, 6)
	assert.Equal(t, "May 2025", chart.Months[5])

	total := chart.Series[len(chart.Series)-1]
	assert.Equal(t, domain.SeriesTotal, total.Key)
	assert.True(t, total.Values[5].Equal(dec(8000)))
	assert.True(t, total.Values[4].Equal(dec(5000)))
	assert.True(t, total.Total.Equal(dec(13000)), "payments outside the window are ignored")
}

func TestExtraPaid_PayeeFilter(t *testing.T) {
	svc, userID := newChartFixture()

	report, err := svc.ExtraPaid(userID, "HDFC")
	require.NoError(t, err)
	assert.True(t, report.Chart.Series[0].Total.Equal(dec(1000)))
	assert.True(t, report.CurrentSplit.Principal.Equal(dec(6000)))
	assert.True(t, report.CurrentSplit.Extra.Equal(dec(1000)))

	report, err = svc.ExtraPaid(userID, "all")
	require.NoError(t, err)
	assert.True(t, report.Chart.Series[0].Total.Equal(dec(1500)))
}

func TestTotalDebtAndRemainingByType(t *testing.T) {
	svc, userID := newChartFixture()

	debt, err := svc.TotalDebt(userID, "")
	require.NoError(t, err)
	assert.True(t, debt.Series[0].Values[5].Equal(dec(49000)))

	byType, err := svc.RemainingByType(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, byType.Series)
}
