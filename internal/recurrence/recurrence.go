// Package recurrence implements the date arithmetic and the state machine for
// recurring transactions.
package recurrence

import (
	"fmt"
	"time"

	"github.com/hemanthscode/fintrack/internal/types"
)

// Advance returns the timestamp exactly one calendar unit after t.
//
// Months and years are calendar-aware: the day of month is clamped to the last
// day of the target month, so monthly from Jan 31 lands on Feb 28 (or Feb 29
// in leap years) instead of overshooting into March.
//
// An unknown frequency is a programming error and panics.
func Advance(t time.Time, f types.Frequency) time.Time {
	switch f {
	case types.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case types.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case types.FrequencyMonthly:
		return addMonths(t, 1)
	case types.FrequencyYearly:
		return addYears(t, 1)
	}

	panic(fmt.Sprintf("cannot advance by unknown frequency %q", f))
}

// PeriodEnd returns the end of a budgeting window that starts at start.
func PeriodEnd(start time.Time, p types.Period) time.Time {
	return Advance(start, p.Frequency())
}

func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	// Normalize via the first of the month, then clamp the day
	first := time.Date(year, month, 1, hour, minute, second, t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, minute, second, t.Nanosecond(), t.Location())
}

func addYears(t time.Time, years int) time.Time {
	return addMonths(t, years*12)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
