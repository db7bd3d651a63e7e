package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUpcomingHorizonDays is how far ahead the upcoming view looks
const DefaultUpcomingHorizonDays = 31

// DueItem is a payable placed on a specific due date
type DueItem struct {
	Payable *Payable
	DueDate time.Time
	Paid    bool
}

// DueGroup collects the payables that share a due day
type DueGroup struct {
	Day     int
	DueDate time.Time
	Label   string
	Items   []DueItem
	Total   decimal.Decimal
}

// MonthTotals are the headline figures of a grouped view
type MonthTotals struct {
	TotalPayable  decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalYetToPay decimal.Decimal
	TotalBills    decimal.Decimal
	TotalDebt     decimal.Decimal
	PayableCount  int
	UnpaidCount   int
}

// MonthView is the grouped list of payables due in one calendar month
type MonthView struct {
	Year   int
	Month  time.Month
	Payee  string
	Groups []DueGroup
	Totals MonthTotals
}

// UpcomingView is the grouped list of payables due from today within a horizon
type UpcomingView struct {
	From             time.Time
	To               time.Time
	Groups           []DueGroup
	Totals           MonthTotals
	NextDue          *DueGroup
	DaysUntilNextDue int
}

// BreakdownEntry is one bucket of a categorical breakdown
type BreakdownEntry struct {
	Key    string
	Label  string
	Amount decimal.Decimal
	Count  int
}

// Breakdown maps bucket keys to totals; Sorted orders them by amount descending
type Breakdown struct {
	Entries map[string]BreakdownEntry
	Sorted  []BreakdownEntry
	Total   decimal.Decimal
}

// DashboardSummary is the home screen: this month's totals plus what is coming up
type DashboardSummary struct {
	Month     MonthView
	Upcoming  UpcomingView
	ByType    Breakdown
	OpenCount int
}
