package aggregate

import (
	"sort"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ChartMonths is the number of months shown on trend charts, the current one included
const ChartMonths = 6

// HistoryLabelLayout labels points of a single payable's payment history
const HistoryLabelLayout = "02-Jan"

// Single-series chart keys
const (
	SeriesExtra     = "extra"
	SeriesRemaining = "remaining"
)

// ChartWindow returns the first day of each month shown on trend charts ending at now's month
func ChartWindow(now time.Time) []time.Time {
	return util.LastMonths(now, ChartMonths)
}

// PaymentsByTypeChart sums amount paid per payable type per month, plus a Total series.
// Type series are ordered by their overall total descending.
func PaymentsByTypeChart(payments []*domain.Payment, months []time.Time) domain.MonthlyChart {
	chart := byTypeChart(payments, months, func(p *domain.Payment) decimal.Decimal { return p.AmountPaid })

	total := newSeries(domain.SeriesTotal, domain.SeriesTotal, len(months))
	for _, s := range chart.Series {
		for i, v := range s.Values {
			total.Values[i] = total.Values[i].Add(v)
		}
		total.Total = total.Total.Add(s.Total)
	}
	chart.Series = append(chart.Series, total)
	return chart
}

// RemainingByTypeChart sums the remaining balance snapshots recorded with payments, per type per month
func RemainingByTypeChart(payments []*domain.Payment, months []time.Time) domain.MonthlyChart {
	return byTypeChart(payments, months, func(p *domain.Payment) decimal.Decimal { return p.RemainingAmount })
}

// ExtraPaidChart sums extra amounts paid per month, optionally for a single payee
func ExtraPaidChart(payments []*domain.Payment, months []time.Time, payee string) domain.MonthlyChart {
	return singleSeriesChart(payments, months, payee, SeriesExtra, "Extra Paid", func(p *domain.Payment) decimal.Decimal {
		return p.ExtraAmount
	})
}

// TotalDebtChart sums remaining balance snapshots per month, optionally for a single payee
func TotalDebtChart(payments []*domain.Payment, months []time.Time, payee string) domain.MonthlyChart {
	return singleSeriesChart(payments, months, payee, SeriesRemaining, "Remaining Debt", func(p *domain.Payment) decimal.Decimal {
		return p.RemainingAmount
	})
}

// SplitPrincipalExtra compares installments with extra payments made in the month starting at month
func SplitPrincipalExtra(payments []*domain.Payment, month time.Time) domain.PrincipalExtraSplit {
	split := domain.PrincipalExtraSplit{
		Month:     month.Format(MonthLabelLayout),
		Principal: decimal.Zero,
		Extra:     decimal.Zero,
	}
	for _, p := range payments {
		if !util.IsSameMonth(p.PaymentDate, month) {
			continue
		}
		split.Principal = split.Principal.Add(p.AmountPaid)
		split.Extra = split.Extra.Add(p.ExtraAmount)
	}
	return split
}

// PaymentHistory orders a payable's payments by payment date
func PaymentHistory(payments []*domain.Payment) []domain.PaymentHistoryPoint {
	sorted := make([]*domain.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.Before(sorted[j].PaymentDate)
	})

	points := make([]domain.PaymentHistoryPoint, 0, len(sorted))
	for _, p := range sorted {
		points = append(points, domain.PaymentHistoryPoint{
			Label:           p.PaymentDate.UTC().Format(HistoryLabelLayout),
			Date:            p.PaymentDate,
			AmountPaid:      p.AmountPaid,
			ExtraAmount:     p.ExtraAmount,
			RemainingAmount: p.RemainingAmount,
		})
	}
	return points
}

func byTypeChart(payments []*domain.Payment, months []time.Time, value func(*domain.Payment) decimal.Decimal) domain.MonthlyChart {
	byType := make(map[domain.PayableType]*domain.ChartSeries)

	for _, p := range payments {
		i := monthIndex(months, p.PaymentDate)
		if i < 0 {
			continue
		}
		s, ok := byType[p.PayableType]
		if !ok {
			created := newSeries(string(p.PayableType), p.PayableType.Label(), len(months))
			s = &created
			byType[p.PayableType] = s
		}
		v := value(p)
		s.Values[i] = s.Values[i].Add(v)
		s.Total = s.Total.Add(v)
	}

	series := make([]domain.ChartSeries, 0, len(byType))
	for _, s := range byType {
		series = append(series, *s)
	}
	sort.Slice(series, func(i, j int) bool {
		if !series[i].Total.Equal(series[j].Total) {
			return series[i].Total.GreaterThan(series[j].Total)
		}
		return series[i].Label < series[j].Label
	})

	return domain.MonthlyChart{Months: monthLabels(months), Series: series}
}

func singleSeriesChart(payments []*domain.Payment, months []time.Time, payee, key, label string, value func(*domain.Payment) decimal.Decimal) domain.MonthlyChart {
	s := newSeries(key, label, len(months))
	filterPayee := domain.HasPayeeFilter(payee)

	for _, p := range payments {
		if filterPayee && p.PayablePayee != payee {
			continue
		}
		i := monthIndex(months, p.PaymentDate)
		if i < 0 {
			continue
		}
		v := value(p)
		s.Values[i] = s.Values[i].Add(v)
		s.Total = s.Total.Add(v)
	}

	return domain.MonthlyChart{Months: monthLabels(months), Series: []domain.ChartSeries{s}}
}

func newSeries(key, label string, n int) domain.ChartSeries {
	values := make([]decimal.Decimal, n)
	for i := range values {
		values[i] = decimal.Zero
	}
	return domain.ChartSeries{Key: key, Label: label, Values: values, Total: decimal.Zero}
}

func monthIndex(months []time.Time, t time.Time) int {
	for i, m := range months {
		if util.IsSameMonth(m, t) {
			return i
		}
	}
	return -1
}

func monthLabels(months []time.Time) []string {
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.Format(MonthLabelLayout)
	}
	return labels
}
