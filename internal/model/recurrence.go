package model

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// MaxRecurrenceSteps bounds every expansion loop; hitting it truncates silently.
const MaxRecurrenceSteps = 365

type Cadence string

const (
	CadenceNone     Cadence = ""
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

func (c Cadence) IsValid() bool {
	switch c {
	case CadenceNone, CadenceDaily, CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	default:
		return false
	}
}

// Step advances d by one interval of the cadence. CadenceNone does not move.
func (c Cadence) Step(d Date) Date {
	switch c {
	case CadenceDaily:
		return d.AddDays(1)
	case CadenceWeekly:
		return d.AddDays(7)
	case CadenceBiweekly:
		return d.AddDays(14)
	case CadenceMonthly:
		return d.AddMonths(1)
	default:
		return d
	}
}

// DefaultOccurrenceCount is the lookahead used when a task sets no count.
func DefaultOccurrenceCount(c Cadence) int {
	switch c {
	case CadenceDaily:
		return 14
	case CadenceWeekly:
		return 8
	case CadenceBiweekly, CadenceMonthly:
		return 6
	default:
		return 0
	}
}

// NextOccurrence steps from anchor until the result is strictly after today.
func NextOccurrence(anchor Date, c Cadence, today Date) Date {
	next := anchor
	for i := 0; i < MaxRecurrenceSteps; i++ {
		next = c.Step(next)
		if next.After(today) {
			break
		}
	}
	return next
}

// FutureOccurrences lists the dates after anchor produced by stepping the cadence.
// With endDate set, generation stops once a stepped date passes it; otherwise it
// stops after count dates. The result may be shorter than requested when the
// iteration cap is reached.
func FutureOccurrences(anchor Date, c Cadence, count int, endDate *Date) []Date {
	if c == CadenceNone {
		return nil
	}
	out := make([]Date, 0)
	cursor := anchor
	for i := 0; i < MaxRecurrenceSteps; i++ {
		if endDate == nil && len(out) >= count {
			break
		}
		cursor = c.Step(cursor)
		if endDate != nil && cursor.After(*endDate) {
			break
		}
		out = append(out, cursor)
	}
	return out
}

func (c Cadence) frequency() (rrule.Frequency, int, error) {
	switch c {
	case CadenceDaily:
		return rrule.DAILY, 1, nil
	case CadenceWeekly:
		return rrule.WEEKLY, 1, nil
	case CadenceBiweekly:
		return rrule.WEEKLY, 2, nil
	case CadenceMonthly:
		return rrule.MONTHLY, 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCadence, c)
	}
}

// RRule renders the cadence as an RFC 5545 rule anchored at anchor. A non-nil
// until wins over count, mirroring FutureOccurrences.
func (c Cadence) RRule(anchor Date, count int, until *Date) (*rrule.RRule, error) {
	freq, interval, err := c.frequency()
	if err != nil {
		return nil, err
	}
	opt := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  anchor.Time(),
	}
	if until != nil {
		opt.Until = until.Time().Add(24*time.Hour - time.Second)
	} else if count > 0 {
		// Dtstart itself is the first instance of an rrule.
		opt.Count = count + 1
	}
	return rrule.NewRRule(opt)
}
