// Package aggregate derives dashboard views from payables and payments.
// Every function is pure: inputs are never mutated and nothing is persisted.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaidPayableIDs returns the payables with at least one payment dated between from and to, inclusive by calendar day
func PaidPayableIDs(payments []*domain.Payment, from, to time.Time) map[uuid.UUID]bool {
	paid := make(map[uuid.UUID]bool)
	for _, p := range payments {
		if withinDays(p.PaymentDate, from, to) {
			paid[p.PayableID] = true
		}
	}
	return paid
}

// FilterByPayee keeps payables of the given payee; "all" or empty keeps everything
func FilterByPayee(payables []*domain.Payable, payee string) []*domain.Payable {
	if !domain.HasPayeeFilter(payee) {
		return payables
	}
	filtered := make([]*domain.Payable, 0, len(payables))
	for _, p := range payables {
		if p.Payee == payee {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// OpenPayables returns the payables that are not closed
func OpenPayables(payables []*domain.Payable) []*domain.Payable {
	open := make([]*domain.Payable, 0, len(payables))
	for _, p := range payables {
		if p.IsOpen() {
			open = append(open, p)
		}
	}
	return open
}

// GroupMonth builds the grouped view of everything due in the given month.
// Closed payables only appear when they were paid in that month.
func GroupMonth(payables []*domain.Payable, payments []*domain.Payment, year int, month time.Month, payee string) domain.MonthView {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	paid := PaidPayableIDs(payments, monthStart, util.EndOfMonth(monthStart))

	var items []domain.DueItem
	for _, p := range FilterByPayee(payables, payee) {
		if !p.RunsInMonth(monthStart) {
			continue
		}
		if p.IsClosed && !paid[p.ID] {
			continue
		}
		items = append(items, domain.DueItem{
			Payable: p,
			DueDate: p.DueDateInMonth(year, month),
			Paid:    paid[p.ID],
		})
	}

	return domain.MonthView{
		Year:   year,
		Month:  month,
		Payee:  payee,
		Groups: groupItems(items, func(item domain.DueItem) int { return item.Payable.EmiDay }),
		Totals: Totals(items),
	}
}

// GroupUpcoming builds the grouped view of open payables due from today up to horizonDays ahead
func GroupUpcoming(payables []*domain.Payable, payments []*domain.Payment, now time.Time, horizonDays int, payee string) domain.UpcomingView {
	today := util.StartOfDay(now)
	until := today.AddDate(0, 0, horizonDays)

	var items []domain.DueItem
	for _, p := range FilterByPayee(OpenPayables(payables), payee) {
		due := p.NextDueDate(today)
		if due.After(until) {
			continue
		}
		paid := PaidPayableIDs(payments, util.StartOfMonth(due), util.EndOfMonth(due))
		items = append(items, domain.DueItem{Payable: p, DueDate: due, Paid: paid[p.ID]})
	}

	view := domain.UpcomingView{
		From:   today,
		To:     until,
		Groups: groupItems(items, func(item domain.DueItem) int { return int(item.DueDate.Unix() / 86400) }),
		Totals: Totals(items),
	}
	if len(view.Groups) > 0 {
		view.NextDue = &view.Groups[0]
		view.DaysUntilNextDue = util.DaysBetween(today, view.NextDue.DueDate)
	}
	return view
}

// groupItems partitions items by key. Groups are ordered by due date then key, items keep their input order.
func groupItems(items []domain.DueItem, key func(domain.DueItem) int) []domain.DueGroup {
	index := make(map[int]int)
	groups := make([]domain.DueGroup, 0)

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, domain.DueGroup{
				Day:     item.Payable.EmiDay,
				DueDate: item.DueDate,
				Label:   util.DueDayLabel(item.DueDate),
				Total:   decimal.Zero,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Total = groups[i].Total.Add(item.Payable.EmiAmount)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if !groups[a].DueDate.Equal(groups[b].DueDate) {
			return groups[a].DueDate.Before(groups[b].DueDate)
		}
		return groups[a].Day < groups[b].Day
	})
	return groups
}

// Totals computes the headline figures of a set of due items
func Totals(items []domain.DueItem) domain.MonthTotals {
	totals := domain.MonthTotals{
		TotalPayable:  decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalYetToPay: decimal.Zero,
		TotalBills:    decimal.Zero,
		TotalDebt:     decimal.Zero,
		PayableCount:  len(items),
	}

	for _, item := range items {
		p := item.Payable
		totals.TotalPayable = totals.TotalPayable.Add(p.EmiAmount)
		if item.Paid {
			totals.TotalPaid = totals.TotalPaid.Add(p.EmiAmount)
		} else {
			totals.UnpaidCount++
		}
		if p.Type == domain.PayableTypeBill {
			totals.TotalBills = totals.TotalBills.Add(p.EmiAmount)
		}
		if p.Type.CountsAsDebt() {
			totals.TotalDebt = totals.TotalDebt.Add(p.RemainingAmount)
		}
	}

	totals.TotalYetToPay = totals.TotalPayable.Sub(totals.TotalPaid)
	return totals
}

// AvailableMonths returns the distinct YYYY-MM keys of the given payment months plus now's month, newest first
func AvailableMonths(paymentMonths []time.Time, now time.Time) []string {
	seen := map[string]bool{util.MonthKey(now): true}
	for _, m := range paymentMonths {
		seen[util.MonthKey(m)] = true
	}

	months := make([]string, 0, len(seen))
	for key := range seen {
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// DistinctPayees returns the non-empty payees of the given payables, sorted case-insensitively
func DistinctPayees(payables []*domain.Payable) []string {
	seen := make(map[string]bool)
	payees := make([]string, 0)
	for _, p := range payables {
		if p.Payee == "" || seen[p.Payee] {
			continue
		}
		seen[p.Payee] = true
		payees = append(payees, p.Payee)
	}
	sort.Slice(payees, func(i, j int) bool {
		return strings.ToLower(payees[i]) < strings.ToLower(payees[j])
	})
	return payees
}

func withinDays(t, from, to time.Time) bool {
	day := util.StartOfDay(t)
	return !day.Before(util.StartOfDay(from)) && !day.After(util.StartOfDay(to))
}
