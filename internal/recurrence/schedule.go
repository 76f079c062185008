package recurrence

import (
	"time"

	"github.com/hemanthscode/fintrack/internal/types"
)

// State is the lifecycle state of a recurring template.
type State int

const (
	// Active templates have a pending occurrence.
	Active State = iota
	// Ended templates never materialize again.
	Ended
)

// Schedule is the recurrence configuration of a template. It is a value type,
// transitions return the new schedule instead of mutating the receiver.
type Schedule struct {
	Frequency      types.Frequency
	NextOccurrence *time.Time // nil once the series has permanently ended
	EndDate        *time.Time
}

// State returns the lifecycle state of the schedule at the given time.
func (s Schedule) State(now time.Time) State {
	if s.NextOccurrence == nil {
		return Ended
	}

	if s.EndDate != nil && s.EndDate.Before(now) {
		return Ended
	}

	return Active
}

// Due reports whether an occurrence is pending at the given time.
func (s Schedule) Due(now time.Time) bool {
	return s.State(now) == Active && !s.NextOccurrence.After(now)
}

// Advanced returns the schedule after materializing the pending occurrence.
// If the next occurrence would fall past the end date, the series ends: the
// next occurrence becomes nil and the end date is set to now.
func (s Schedule) Advanced(now time.Time) Schedule {
	next := Advance(*s.NextOccurrence, s.Frequency)

	if s.EndDate != nil && next.After(*s.EndDate) {
		return s.ended(now)
	}

	s.NextOccurrence = &next
	return s
}

// Cancelled returns the schedule after an explicit user cancellation.
func (s Schedule) Cancelled(now time.Time) Schedule {
	return s.ended(now)
}

func (s Schedule) ended(now time.Time) Schedule {
	s.NextOccurrence = nil
	s.EndDate = &now
	return s
}

// Upcoming returns up to count future occurrence dates without mutating the
// schedule. The preview respects the end date, so it can return fewer entries
// than requested.
func (s Schedule) Upcoming(count int) []time.Time {
	occurrences := make([]time.Time, 0, count)
	if s.NextOccurrence == nil {
		return occurrences
	}

	next := *s.NextOccurrence
	for len(occurrences) < count {
		if s.EndDate != nil && next.After(*s.EndDate) {
			break
		}

		occurrences = append(occurrences, next)
		next = Advance(next, s.Frequency)
	}

	return occurrences
}
