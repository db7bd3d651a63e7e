package util

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the layout of month keys used in query params and payment month lists
const MonthKeyLayout = "2006-01"

// Calendar helpers below read every instant on the UTC calendar, whatever its location.

// IsSameMonth reports whether a and b fall in the same calendar month
func IsSameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	lastDay := DaysInMonth(year, month)

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns midnight UTC of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns midnight UTC of the last day of t's month
func EndOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// StartOfDay truncates t to midnight UTC of its calendar date
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t by n calendar months, anchored on the first of the month
// so that Jan 31 + 1 does not overflow into March
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// LastMonths returns the first day of each of the n months ending with t's month, oldest first
func LastMonths(t time.Time, n int) []time.Time {
	months := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, AddMonths(t, -i))
	}
	return months
}

// MonthKey formats t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", key)
	}
	return t, nil
}

// DaysBetween returns the whole number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 23rd, 11th)
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// DueDayLabel formats a due date as a group header, e.g. "Day - 23rd of May, Friday"
func DueDayLabel(t time.Time) string {
	return fmt.Sprintf("Day - %s of %s, %s", Ordinal(t.Day()), t.Month(), t.Weekday())
}
