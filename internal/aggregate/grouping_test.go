package aggregate

import (
	"testing"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPayable(title string, typ domain.PayableType, emiDay int, emi, remaining int64) *domain.Payable {
	return &domain.Payable{
		ID:              uuid.New(),
		Title:           title,
		Type:            typ,
		EmiDay:          emiDay,
		EmiAmount:       decimal.NewFromInt(emi),
		RemainingAmount: decimal.NewFromInt(remaining),
		TotalAmount:     decimal.NewFromInt(remaining),
		ExtraPay:        decimal.Zero,
		Status:          domain.PayableStatusActive,
	}
}

func newPayment(p *domain.Payable, paid int64, at time.Time) *domain.Payment {
	return &domain.Payment{
		ID:              uuid.New(),
		PayableID:       p.ID,
		AmountPaid:      decimal.NewFromInt(paid),
		ExtraAmount:     decimal.Zero,
		RemainingAmount: p.RemainingAmount.Sub(decimal.NewFromInt(paid)),
		PaymentDate:     at,
		PayableType:     p.Type,
		PayablePayee:    p.Payee,
	}
}

func TestGroupMonth_PartitionsPayablesByDay(t *testing.T) {
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	phone := newPayable("Phone", domain.PayableTypePayLater, 5, 1500, 6000)
	card := newPayable("Card", domain.PayableTypeCreditCard, 15, 3000, 30000)
	power := newPayable("Power", domain.PayableTypeBill, 28, 1200, 0)

	view := GroupMonth([]*domain.Payable{car, phone, card, power}, nil, 2025, time.May, "")

	require.Len(t, view.Groups, 3)
	assert.Equal(t, 5, view.Groups[0].Day)
	assert.Equal(t, 15, view.Groups[1].Day)
	assert.Equal(t, 28, view.Groups[2].Day)

	// Items keep input order within a group
	require.Len(t, view.Groups[1].Items, 2)
	assert.Equal(t, "Car", view.Groups[1].Items[0].Payable.Title)
	assert.Equal(t, "Card", view.Groups[1].Items[1].Payable.Title)
	assert.True(t, view.Groups[1].Total.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, "Day - 15th of May, Thursday", view.Groups[1].Label)

	seen := make(map[uuid.UUID]int)
	for _, g := range view.Groups {
		for _, item := range g.Items {
			seen[item.Payable.ID]++
		}
	}
	assert.Len(t, seen, 4)
	for id, n := range seen {
		assert.Equal(t, 1, n, "payable %s appears more than once", id)
	}
}

func TestGroupMonth_Totals(t *testing.T) {
	car := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	water := newPayable("Water", domain.PayableTypeBill, 3, 1200, 0)
	power := newPayable("Power", domain.PayableTypeBill, 9, 800, 0)
	house := newPayable("House", domain.PayableTypeRent, 1, 20000, 240000)
	gold := newPayable("Gold loan", domain.PayableTypeLoan, 20, 2000, 100000)
	card := newPayable("Card", domain.PayableTypeCreditCard, 25, 3000, 30000)

	payments := []*domain.Payment{
		newPayment(car, 5000, day(2025, time.May, 15)),
		newPayment(water, 1200, day(2025, time.May, 3)),
		// Paid in April, does not count for May
		newPayment(card, 3000, day(2025, time.April, 25)),
	}

	view := GroupMonth([]*domain.Payable{car, water, power, house, gold, card}, payments, 2025, time.May, "all")
	totals := view.Totals

	assert.True(t, totals.TotalPayable.Equal(decimal.NewFromInt(32000)))
	assert.True(t, totals.TotalPaid.Equal(decimal.NewFromInt(6200)))
	assert.True(t, totals.TotalYetToPay.Equal(decimal.NewFromInt(25800)))
	assert.True(t, totals.TotalPayable.Equal(totals.TotalPaid.Add(totals.TotalYetToPay)))
	assert.True(t, totals.TotalBills.Equal(decimal.NewFromInt(2000)))
	// Rent, bills and interest-only loans are not debt
	assert.True(t, totals.TotalDebt.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, 6, totals.PayableCount)
	assert.Equal(t, 4, totals.UnpaidCount)
}

func TestGroupMonth_ClosedAndOutOfWindowPayables(t *testing.T) {
	closedPaid := newPayable("Closed but paid", domain.PayableTypeEMI, 10, 1000, 0)
	closedPaid.IsClosed = true
	closedUnpaid := newPayable("Closed", domain.PayableTypeEMI, 10, 1000, 0)
	closedUnpaid.IsClosed = true
	notStarted := newPayable("Future", domain.PayableTypeEMI, 10, 1000, 10000)
	start := day(2025, time.June, 1)
	notStarted.StartDate = &start
	ended := newPayable("Ended", domain.PayableTypeEMI, 10, 1000, 0)
	end := day(2025, time.April, 10)
	ended.EndDate = &end

	payments := []*domain.Payment{newPayment(closedPaid, 1000, day(2025, time.May, 10))}

	view := GroupMonth([]*domain.Payable{closedPaid, closedUnpaid, notStarted, ended}, payments, 2025, time.May, "")

	require.Len(t, view.Groups, 1)
	require.Len(t, view.Groups[0].Items, 1)
	assert.Equal(t, "Closed but paid", view.Groups[0].Items[0].Payable.Title)
	assert.True(t, view.Groups[0].Items[0].Paid)
}

func TestGroupMonth_PayeeFilter(t *testing.T) {
	a := newPayable("A", domain.PayableTypeEMI, 5, 1000, 10000)
	a.Payee = "HDFC"
	b := newPayable("B", domain.PayableTypeEMI, 6, 2000, 10000)
	b.Payee = "ICICI"

	view := GroupMonth([]*domain.Payable{a, b}, nil, 2025, time.May, "ICICI")

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "B", view.Groups[0].Items[0].Payable.Title)
	assert.True(t, view.Totals.TotalPayable.Equal(decimal.NewFromInt(2000)))
}

func TestGroupMonth_ClampsShortMonths(t *testing.T) {
	p := newPayable("Month end", domain.PayableTypeEMI, 31, 1000, 10000)

	view := GroupMonth([]*domain.Payable{p}, nil, 2025, time.February, "")

	require.Len(t, view.Groups, 1)
	assert.Equal(t, day(2025, time.February, 28), view.Groups[0].DueDate)
	assert.Equal(t, 31, view.Groups[0].Day)
}

func TestGroupUpcoming_RollsPassedDaysIntoNextMonth(t *testing.T) {
	now := time.Date(2025, time.May, 20, 9, 30, 0, 0, time.UTC)
	passed := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)
	ahead := newPayable("Phone", domain.PayableTypePayLater, 25, 1500, 6000)
	closed := newPayable("Closed", domain.PayableTypeEMI, 22, 1500, 0)
	closed.IsClosed = true

	view := GroupUpcoming([]*domain.Payable{passed, ahead, closed}, nil, now, domain.DefaultUpcomingHorizonDays, "")

	require.Len(t, view.Groups, 2)
	assert.Equal(t, day(2025, time.May, 25), view.Groups[0].DueDate)
	assert.Equal(t, day(2025, time.June, 15), view.Groups[1].DueDate)
	require.NotNil(t, view.NextDue)
	assert.Equal(t, "Phone", view.NextDue.Items[0].Payable.Title)
	assert.Equal(t, 5, view.DaysUntilNextDue)
}

func TestGroupUpcoming_HorizonExcludesFarDates(t *testing.T) {
	now := day(2025, time.May, 20)
	p := newPayable("Car", domain.PayableTypeEMI, 15, 5000, 50000)

	view := GroupUpcoming([]*domain.Payable{p}, nil, now, 7, "")

	assert.Empty(t, view.Groups)
	assert.Nil(t, view.NextDue)
	assert.True(t, view.Totals.TotalPayable.IsZero())
}

func TestAvailableMonths(t *testing.T) {
	now := day(2025, time.May, 20)
	months := AvailableMonths([]time.Time{
		day(2025, time.March, 1),
		day(2024, time.December, 1),
		day(2025, time.March, 1),
	}, now)

	assert.Equal(t, []string{"2025-05", "2025-03", "2024-12"}, months)
}

func TestDistinctPayees(t *testing.T) {
	a := newPayable("A", domain.PayableTypeEMI, 1, 1, 1)
	a.Payee = "sbi"
	b := newPayable("B", domain.PayableTypeEMI, 1, 1, 1)
	b.Payee = "HDFC"
	c := newPayable("C", domain.PayableTypeEMI, 1, 1, 1)
	c.Payee = "HDFC"
	d := newPayable("D", domain.PayableTypeEMI, 1, 1, 1)

	assert.Equal(t, []string{"HDFC", "sbi"}, DistinctPayees([]*domain.Payable{a, b, c, d}))
}
