package aggregate

import (
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentsByTypeChart(t *testing.T) {
	now := day(2025, time.May, 20)
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	card := newPayable("Card", domain.PayableTypeCreditCard, 10, 3000, 30000)

	payments := []*domain.Payment{
		newPayment(car, 5000, day(2025, time.April, 15)),
		newPayment(car, 5000, day(2025, time.May, 15)),
		newPayment(card, 3000, day(2025, time.May, 10)),
		// Outside the six month window
		newPayment(card, 9000, day(2024, time.November, 10)),
	}

	chart := PaymentsByTypeChart(payments, ChartWindow(now))

	assert.Equal(t, []string{"Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025", "May 2025"}, chart.Months)
	require.Len(t, chart.Series, 3)
	assert.Equal(t, "EMI", chart.Series[0].Label)
	assert.Equal(t, "Credit Card", chart.Series[1].Label)
	assert.Equal(t, domain.SeriesTotal, chart.Series[2].Key)
	assert.True(t, chart.Series[2].Values[5].Equal(decimal.NewFromInt(8000)))
	assert.True(t, chart.Series[2].Values[4].Equal(decimal.NewFromInt(5000)))
	assert.True(t, chart.Series[2].Total.Equal(decimal.NewFromInt(13000)))
}

func TestExtraPaidChart_PayeeFilter(t *testing.T) {
	now := day(2025, time.May, 20)
	a := newPayable("A", domain.PayableTypeEMI, 15, 5000, 50000)
	a.Payee = "HDFC"
	b := newPayable("B", domain.PayableTypeEMI, 15, 5000, 50000)
	b.Payee = "SBI"

	pa := newPayment(a, 5000, day(2025, time.May, 15))
	pa.ExtraAmount = decimal.NewFromInt(1000)
	pb := newPayment(b, 5000, day(2025, time.May, 15))
	pb.ExtraAmount = decimal.NewFromInt(2500)

	all := ExtraPaidChart([]*domain.Payment{pa, pb}, ChartWindow(now), "all")
	hdfc := ExtraPaidChart([]*domain.Payment{pa, pb}, ChartWindow(now), "HDFC")

	assert.True(t, all.Series[0].Total.Equal(decimal.NewFromInt(3500)))
	assert.True(t, hdfc.Series[0].Total.Equal(decimal.NewFromInt(1000)))
}

func TestTotalDebtChart(t *testing.T) {
	now := day(2025, time.May, 20)
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)

	chart := TotalDebtChart([]*domain.Payment{newPayment(car, 5000, day(2025, time.May, 15))}, ChartWindow(now), "")

	require.Len(t, chart.Series, 1)
	assert.True(t, chart.Series[0].Values[5].Equal(decimal.NewFromInt(45000)))
	assert.True(t, chart.Series[0].Values[0].IsZero())
}

func TestSplitPrincipalExtra(t *testing.T) {
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	may := newPayment(car, 5000, day(2025, time.May, 15))
	may.ExtraAmount = decimal.NewFromInt(2000)
	april := newPayment(car, 5000, day(2025, time.April, 15))

	split := SplitPrincipalExtra([]*domain.Payment{may, april}, day(2025, time.May, 1))

	assert.Equal(t, "May 2025", split.Month)
	assert.True(t, split.Principal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, split.Extra.Equal(decimal.NewFromInt(2000)))
}

func TestPaymentHistory_OrderedByDate(t *testing.T) {
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	payments := []*domain.Payment{
		newPayment(car, 5000, day(2025, time.May, 15)),
		newPayment(car, 5000, day(2025, time.March, 15)),
	}

	history := PaymentHistory(payments)

	require.Len(t, history, 2)
	assert.Equal(t, "15-Mar", history[0].Label)
	assert.Equal(t, "15-May", history[1].Label)
	// Input is not reordered
	assert.Equal(t, day(2025, time.May, 15), payments[0].PaymentDate)
}
