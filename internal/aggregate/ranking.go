package aggregate

import (
	"sort"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/shopspring/decimal"
)

// metricFunc returns the value a payable is ranked by and whether it qualifies at all
type metricFunc func(p *domain.Payable) (decimal.Decimal, bool)

// rank orders qualifying payables by metric descending, keeping input order on ties, capped at MaxRankedPayables.
// Payables with a metric of zero or below never qualify.
func rank(payables []*domain.Payable, metric metricFunc) []domain.RankedPayable {
	ranked := make([]domain.RankedPayable, 0)
	for _, p := range payables {
		value, ok := metric(p)
		if !ok || !value.IsPositive() {
			continue
		}
		ranked = append(ranked, domain.RankedPayable{Payable: p, Metric: value})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metric.GreaterThan(ranked[j].Metric)
	})

	if len(ranked) > domain.MaxRankedPayables {
		ranked = ranked[:domain.MaxRankedPayables]
	}
	return ranked
}

// RankByExtraPay ranks payables by extra amount paid each month
func RankByExtraPay(payables []*domain.Payable) []domain.RankedPayable {
	return rank(payables, func(p *domain.Payable) (decimal.Decimal, bool) {
		return p.ExtraPay, true
	})
}

// RankByInterest ranks payables by monthly interest rate
func RankByInterest(payables []*domain.Payable) []domain.RankedPayable {
	return rank(payables, func(p *domain.Payable) (decimal.Decimal, bool) {
		return p.InterestPerMonth, true
	})
}

// RankByEmi ranks payables by installment amount
func RankByEmi(payables []*domain.Payable) []domain.RankedPayable {
	return rank(payables, func(p *domain.Payable) (decimal.Decimal, bool) {
		return p.EmiAmount, true
	})
}

// RankByClosureImpact ranks payables by installment freed per unit of balance cleared (emi / remaining)
func RankByClosureImpact(payables []*domain.Payable) []domain.RankedPayable {
	return rank(payables, func(p *domain.Payable) (decimal.Decimal, bool) {
		if !p.RemainingAmount.IsPositive() || !p.EmiAmount.IsPositive() {
			return decimal.Zero, false
		}
		return p.EmiAmount.Div(p.RemainingAmount), true
	})
}

// AnnualizedInterest converts a monthly interest rate into its yearly equivalent
func AnnualizedInterest(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(12))
}

// ClosingSoon returns payables whose end date lies between today and the end of the month
// domain.ClosingSoonMonths after now's, earliest first
func ClosingSoon(payables []*domain.Payable, now time.Time) []*domain.Payable {
	today := util.StartOfDay(now)
	limit := util.EndOfMonth(util.AddMonths(now, domain.ClosingSoonMonths))

	closing := make([]*domain.Payable, 0)
	for _, p := range payables {
		if p.EndDate == nil {
			continue
		}
		end := util.StartOfDay(*p.EndDate)
		if end.Before(today) || end.After(limit) {
			continue
		}
		closing = append(closing, p)
	}

	sort.SliceStable(closing, func(i, j int) bool {
		return closing[i].EndDate.Before(*closing[j].EndDate)
	})
	return closing
}

// BuildInsights computes every strategic ranking over the open payables
func BuildInsights(payables []*domain.Payable, now time.Time) domain.InsightReport {
	open := OpenPayables(payables)

	report := domain.InsightReport{
		TopExtraPay:       RankByExtraPay(open),
		TopInterest:       RankByInterest(open),
		TopEmi:            RankByEmi(open),
		StrategicClosures: RankByClosureImpact(open),
		ClosingSoon:       ClosingSoon(open, now),
		TotalExtraPay:     decimal.Zero,
		ClosureRemaining:  decimal.Zero,
		ClosureEmi:        decimal.Zero,
		GeneratedAt:       now,
	}

	for _, r := range report.TopExtraPay {
		report.TotalExtraPay = report.TotalExtraPay.Add(r.Payable.ExtraPay)
	}
	for _, r := range report.StrategicClosures {
		report.ClosureRemaining = report.ClosureRemaining.Add(r.Payable.RemainingAmount)
		report.ClosureEmi = report.ClosureEmi.Add(r.Payable.EmiAmount)
	}
	return report
}
