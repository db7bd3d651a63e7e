package aggregate

import (
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownByType(t *testing.T) {
	now := day(2025, time.May, 20)
	water := newPayable("Water", domain.PayableTypeBill, 3, 1200, 0)
	power := newPayable("Power", domain.PayableTypeBill, 9, 800, 0)
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	closed := newPayable("Old", domain.PayableTypeEMI, 15, 7000, 0)
	closed.IsClosed = true

	breakdown := BreakdownByType([]*domain.Payable{water, power, car, closed}, now)

	require.Len(t, breakdown.Entries, 2)
	assert.True(t, breakdown.Entries["bill"].Amount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Bills", breakdown.Entries["bill"].Label)
	assert.Equal(t, 2, breakdown.Entries["bill"].Count)
	assert.Equal(t, "emi", breakdown.Sorted[0].Key)
	assert.True(t, breakdown.Total.Equal(decimal.NewFromInt(7000)))
}

func TestBreakdownByPayee(t *testing.T) {
	now := day(2025, time.May, 20)
	a := newPayable("A", domain.PayableTypeEMI, 3, 1000, 10000)
	a.Payee = "HDFC"
	b := newPayable("B", domain.PayableTypeEMI, 3, 3000, 10000)

	breakdown := BreakdownByPayee([]*domain.Payable{a, b}, now)

	require.Len(t, breakdown.Sorted, 2)
	assert.Equal(t, UnassignedPayee, breakdown.Sorted[0].Key)
	assert.Equal(t, "HDFC", breakdown.Sorted[1].Key)
}

func TestPaymentsByMonth_Chronological(t *testing.T) {
	p := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	payments := []*domain.Payment{
		newPayment(p, 5000, day(2025, time.May, 15)),
		newPayment(p, 7000, day(2025, time.March, 15)),
		newPayment(p, 5000, day(2025, time.May, 30)),
	}

	breakdown := PaymentsByMonth(payments)

	require.Len(t, breakdown.Sorted, 2)
	assert.Equal(t, "Mar 2025", breakdown.Sorted[0].Label)
	assert.Equal(t, "May 2025", breakdown.Sorted[1].Label)
	assert.True(t, breakdown.Entries["2025-05"].Amount.Equal(decimal.NewFromInt(10000)))
}
