package planner

import (
	"github.com/sandeepkv93/tempo/internal/classify"
	"github.com/sandeepkv93/tempo/internal/model"
)

type Reason string

const (
	ReasonInFocus  Reason = "in focus"
	ReasonOverdue  Reason = "overdue"
	ReasonDueToday Reason = "due today"
	ReasonDueSoon  Reason = "due soon"
	ReasonReady    Reason = "ready to start"
	ReasonCritical Reason = "critical"
)

type FeedItem struct {
	Task    model.Task
	Score   int
	Urgency classify.Urgency
	InFocus bool
	Blocked bool
	Reason  Reason
}

// MyDayFeed lists today's focus tasks by priority, followed by up to limit
// recommendations: unblocked tasks that are ready to start, critical, or due
// within the soon window.
func MyDayFeed(all []model.Task, today model.Date, policy classify.FocusPolicy, limit int) []FeedItem {
	eow := EndOfWeek(today)
	focus := make([]model.Task, 0)
	candidates := make([]model.Task, 0)
	for _, t := range all {
		if t.IsDone() {
			continue
		}
		if classify.IsInFocusToday(t, today, policy) {
			focus = append(focus, t)
			continue
		}
		if t.MyDayDate != nil && t.MyDayDate.Before(today) {
			// Dismissed today; do not recommend it back.
			continue
		}
		if classify.IsBlocked(t, all) {
			continue
		}
		if recommendReason(t, today) != "" {
			candidates = append(candidates, t)
		}
	}

	out := make([]FeedItem, 0, len(focus)+limit)
	for _, t := range RankByPriority(focus, today) {
		out = append(out, FeedItem{
			Task:    t,
			Score:   Priority(t, today, eow),
			Urgency: classify.DueDateStatus(t, today),
			InFocus: true,
			Blocked: classify.IsBlocked(t, all),
			Reason:  ReasonInFocus,
		})
	}
	for i, t := range RankByPriority(candidates, today) {
		if i >= limit {
			break
		}
		out = append(out, FeedItem{
			Task:    t,
			Score:   Priority(t, today, eow),
			Urgency: classify.DueDateStatus(t, today),
			Reason:  recommendReason(t, today),
		})
	}
	return out
}

func recommendReason(t model.Task, today model.Date) Reason {
	switch classify.DueDateStatus(t, today) {
	case classify.UrgencyOverdue:
		return ReasonOverdue
	case classify.UrgencyToday:
		return ReasonDueToday
	case classify.UrgencySoon:
		return ReasonDueSoon
	}
	switch {
	case classify.ReadyToStart(t, today):
		return ReasonReady
	case t.Critical:
		return ReasonCritical
	}
	return ""
}
