package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxRankedPayables caps every insight ranking
const MaxRankedPayables = 10

// ClosingSoonMonths is how many months past the current one the closing soon window reaches
const ClosingSoonMonths = 3

// RankedPayable is a payable with the metric it was ranked by
type RankedPayable struct {
	Payable *Payable
	Metric  decimal.Decimal
}

// InsightReport holds the strategic rankings over open payables
type InsightReport struct {
	TopExtraPay       []RankedPayable
	TotalExtraPay     decimal.Decimal
	TopInterest       []RankedPayable
	TopEmi            []RankedPayable
	StrategicClosures []RankedPayable
	ClosureRemaining  decimal.Decimal
	ClosureEmi        decimal.Decimal
	ClosingSoon       []*Payable
	GeneratedAt       time.Time
}

// Chart series names
const (
	SeriesTotal = "Total"
)

// ChartSeries is one line or stack of a monthly chart, aligned with MonthlyChart.Months
type ChartSeries struct {
	Key    string
	Label  string
	Values []decimal.Decimal
	Total  decimal.Decimal
}

// MonthlyChart is a set of series over consecutive months
type MonthlyChart struct {
	Months []string
	Series []ChartSeries
}

// PaymentHistoryPoint is one payment of a single payable's history
type PaymentHistoryPoint struct {
	Label           string
	Date            time.Time
	AmountPaid      decimal.Decimal
	ExtraAmount     decimal.Decimal
	RemainingAmount decimal.Decimal
}

// PrincipalExtraSplit compares regular installments with extra payments for a month
type PrincipalExtraSplit struct {
	Month     string
	Principal decimal.Decimal
	Extra     decimal.Decimal
}
