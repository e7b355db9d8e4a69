// Package recurrence turns a recurring task into concrete sibling tasks, one
// per future occurrence of its cadence.
package recurrence

import (
	"time"

	"github.com/sandeepkv93/tempo/internal/model"
)

// Anchor is the date occurrences are stepped from: start date, else due date,
// else today.
func Anchor(t model.Task, today model.Date) model.Date {
	switch {
	case t.StartDate != nil:
		return *t.StartDate
	case t.DueDate != nil:
		return *t.DueDate
	default:
		return today
	}
}

// Count is the number of occurrences to generate when no end date bounds the
// series.
func Count(t model.Task) int {
	if t.RecurrenceCount > 0 {
		return t.RecurrenceCount
	}
	return model.DefaultOccurrenceCount(t.RecurrenceType)
}

// Materialize clones trigger once per future occurrence. Clones keep the
// cadence so completing any of them can extend the series. A task without a
// cadence yields nothing.
func Materialize(trigger model.Task, today model.Date) []model.Task {
	if !trigger.IsRecurring() {
		return nil
	}
	anchor := Anchor(trigger, today)
	dates := model.FutureOccurrences(anchor, trigger.RecurrenceType, Count(trigger), trigger.RecurrenceEndDate)
	return cloneAt(trigger, anchor, dates)
}

// SeriesID is the id every occurrence of trigger's series points at: the
// original task's id.
func SeriesID(t model.Task) string {
	if t.ParentID != "" {
		return t.ParentID
	}
	return t.ID
}

// Replenish is run when any occurrence of a recurring series is completed.
// members is the rest of the series: the original task and its clones. New
// occurrences are returned only when no open occurrence is left after today,
// continuing from the latest existing one so dates are never repeated.
func Replenish(trigger model.Task, members []model.Task, today model.Date) []model.Task {
	if !trigger.IsRecurring() {
		return nil
	}
	series := SeriesID(trigger)
	anchor := Anchor(trigger, today)
	latest := anchor
	for _, s := range members {
		if s.ID == trigger.ID || SeriesID(s) != series {
			continue
		}
		at := Anchor(s, today)
		if !s.IsDone() && at.After(today) {
			return nil
		}
		if at.After(latest) {
			latest = at
		}
	}

	dates := model.FutureOccurrences(latest, trigger.RecurrenceType, Count(trigger), trigger.RecurrenceEndDate)
	upcoming := dates[:0]
	for _, d := range dates {
		if d.After(today) {
			upcoming = append(upcoming, d)
		}
	}
	return cloneAt(trigger, anchor, upcoming)
}

func cloneAt(trigger model.Task, anchor model.Date, dates []model.Date) []model.Task {
	out := make([]model.Task, 0, len(dates))
	for _, d := range dates {
		shift := anchor.DaysUntil(d)
		c := trigger.Clone()
		c.ID = ""
		c.ParentID = SeriesID(trigger)
		c.Status = model.StatusTodo
		c.CompletedAt = nil
		c.CreatedAt = time.Time{}
		c.MyDayDate = nil
		switch {
		case trigger.StartDate != nil:
			c.StartDate = d.Ptr()
			if trigger.DueDate != nil {
				c.DueDate = trigger.DueDate.AddDays(shift).Ptr()
			}
		case trigger.DueDate != nil:
			c.DueDate = d.Ptr()
		default:
			c.StartDate = d.Ptr()
		}
		out = append(out, c)
	}
	return out
}
