// Package classify derives read-only views of a task relative to a given day:
// urgency bucket, dependency blocking, readiness and My Day membership.
// Everything here is recomputed on read; nothing is cached.
package classify

import (
	"sort"

	"github.com/sandeepkv93/tempo/internal/model"
)

type Urgency string

const (
	UrgencyNone    Urgency = ""
	UrgencyOverdue Urgency = "overdue"
	UrgencyToday   Urgency = "today"
	UrgencySoon    Urgency = "soon"
	UrgencyOK      Urgency = "ok"
)

// SoonWindowDays is the largest due distance still reported as soon.
const SoonWindowDays = 3

// FocusPolicy selects which dates auto-include a task in today's focus list
// when it carries no explicit my_day_date marker.
type FocusPolicy struct {
	IncludeDue bool
}

func DefaultFocusPolicy() FocusPolicy {
	return FocusPolicy{IncludeDue: true}
}

func DueDateStatus(t model.Task, today model.Date) Urgency {
	if t.DueDate == nil || t.IsDone() {
		return UrgencyNone
	}
	days := today.DaysUntil(*t.DueDate)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyToday
	case days <= SoonWindowDays:
		return UrgencySoon
	default:
		return UrgencyOK
	}
}

// IsBlocked reports whether any existing dependency is unfinished. Dependencies
// pointing at unknown ids do not block.
func IsBlocked(t model.Task, all []model.Task) bool {
	return len(Blockers(t, all)) > 0
}

// Blockers returns the ids of unfinished dependencies, sorted.
func Blockers(t model.Task, all []model.Task) []string {
	if t.IsDone() || len(t.Dependencies) == 0 {
		return nil
	}
	byID := make(map[string]model.Task, len(all))
	for _, other := range all {
		byID[other.ID] = other
	}
	var out []string
	for _, dep := range t.Dependencies {
		other, ok := byID[dep]
		if ok && !other.IsDone() {
			out = append(out, dep)
		}
	}
	sort.Strings(out)
	return out
}

func ReadyToStart(t model.Task, today model.Date) bool {
	if t.Status != model.StatusBacklog {
		return false
	}
	return t.StartDate == nil || !t.StartDate.After(today)
}

// IsInFocusToday applies the my_day_date marker first: a marker equal to today
// includes the task, an older marker means it was dismissed. Without a marker
// the task is included by start date, and by due date when the policy says so.
func IsInFocusToday(t model.Task, today model.Date, policy FocusPolicy) bool {
	if t.IsDone() {
		return false
	}
	if t.MyDayDate != nil {
		if t.MyDayDate.Before(today) {
			return false
		}
		if t.MyDayDate.Equal(today) {
			return true
		}
	}
	if t.StartDate != nil && !t.StartDate.After(today) {
		return true
	}
	if policy.IncludeDue && t.DueDate != nil && !t.DueDate.After(today) {
		return true
	}
	return false
}

// FocusList filters tasks down to today's focus list, keeping input order.
func FocusList(tasks []model.Task, today model.Date, policy FocusPolicy) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if IsInFocusToday(t, today, policy) {
			out = append(out, t)
		}
	}
	return out
}
