package aggregate

import (
	"sort"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/shopspring/decimal"
)

// UnassignedPayee labels payables without a payee
const UnassignedPayee = "Unassigned"

// MonthLabelLayout is the layout of month bucket labels, e.g. "Jan 2025"
const MonthLabelLayout = "Jan 2006"

// BreakdownByType sums the installments of open payables due from the start of now's month, by payable type
func BreakdownByType(payables []*domain.Payable, now time.Time) domain.Breakdown {
	return breakdownOpen(payables, now, func(p *domain.Payable) (string, string) {
		return string(p.Type), p.Type.Label()
	})
}

// BreakdownByPayee sums the installments of open payables due from the start of now's month, by payee
func BreakdownByPayee(payables []*domain.Payable, now time.Time) domain.Breakdown {
	return breakdownOpen(payables, now, func(p *domain.Payable) (string, string) {
		if p.Payee == "" {
			return UnassignedPayee, UnassignedPayee
		}
		return p.Payee, p.Payee
	})
}

func breakdownOpen(payables []*domain.Payable, now time.Time, bucket func(*domain.Payable) (key, label string)) domain.Breakdown {
	monthStart := util.StartOfMonth(now)
	entries := make(map[string]domain.BreakdownEntry)

	for _, p := range OpenPayables(payables) {
		if p.NextDueDate(now).Before(monthStart) {
			continue
		}
		key, label := bucket(p)
		entry, ok := entries[key]
		if !ok {
			entry = domain.BreakdownEntry{Key: key, Label: label, Amount: decimal.Zero}
		}
		entry.Amount = entry.Amount.Add(p.EmiAmount)
		entry.Count++
		entries[key] = entry
	}

	return newBreakdown(entries, byAmountDesc)
}

// PaymentsByMonth sums amount paid per calendar month, ordered chronologically.
// Keys are YYYY-MM, labels are "Jan 2006".
func PaymentsByMonth(payments []*domain.Payment) domain.Breakdown {
	entries := make(map[string]domain.BreakdownEntry)
	for _, p := range payments {
		key := util.MonthKey(p.PaymentDate)
		entry, ok := entries[key]
		if !ok {
			entry = domain.BreakdownEntry{Key: key, Label: p.PaymentDate.UTC().Format(MonthLabelLayout), Amount: decimal.Zero}
		}
		entry.Amount = entry.Amount.Add(p.AmountPaid)
		entry.Count++
		entries[key] = entry
	}

	return newBreakdown(entries, func(a, b domain.BreakdownEntry) bool { return a.Key < b.Key })
}

func byAmountDesc(a, b domain.BreakdownEntry) bool {
	if !a.Amount.Equal(b.Amount) {
		return a.Amount.GreaterThan(b.Amount)
	}
	return a.Label < b.Label
}

func newBreakdown(entries map[string]domain.BreakdownEntry, less func(a, b domain.BreakdownEntry) bool) domain.Breakdown {
	sorted := make([]domain.BreakdownEntry, 0, len(entries))
	total := decimal.Zero
	for _, entry := range entries {
		sorted = append(sorted, entry)
		total = total.Add(entry.Amount)
	}
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	return domain.Breakdown{Entries: entries, Sorted: sorted, Total: total}
}
