package types

import "fmt"

// Period is the length of a budgeting window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether the period is one of the known values.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

func (p Period) String() string {
	return string(p)
}

// Frequency returns the recurrence frequency with the same length as the period.
func (p Period) Frequency() Frequency {
	switch p {
	case PeriodWeekly:
		return FrequencyWeekly
	case PeriodMonthly:
		return FrequencyMonthly
	case PeriodYearly:
		return FrequencyYearly
	}

	panic(fmt.Sprintf("no frequency for period %q", p))
}
