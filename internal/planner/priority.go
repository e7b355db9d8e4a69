package planner

import (
	"sort"
	"time"

	"github.com/sandeepkv93/tempo/internal/model"
)

// EndOfWeek returns the Sunday closing the week that contains today.
func EndOfWeek(today model.Date) model.Date {
	days := (int(time.Sunday) - int(today.Weekday()) + 7) % 7
	return today.AddDays(days)
}

// Priority scores a task for the daily plan. The table is ordered: the first
// matching row wins, so a critical overdue task (110) always outranks every
// non-critical task (45 at most).
func Priority(t model.Task, today, endOfWeek model.Date) int {
	var (
		started        = t.StartDate != nil && !t.StartDate.After(today)
		overdue        = t.DueDate != nil && t.DueDate.Before(today)
		dueToday       = t.DueDate != nil && t.DueDate.Equal(today)
		dueThisWeek    = t.DueDate != nil && inWeek(*t.DueDate, today, endOfWeek)
		startsThisWeek = t.StartDate != nil && inWeek(*t.StartDate, today, endOfWeek)
		dueLater       = t.DueDate != nil && t.DueDate.After(endOfWeek)
	)

	if t.Critical {
		switch {
		case overdue:
			return 110
		case started && dueToday:
			return 100
		case started && dueThisWeek:
			return 90
		case dueToday:
			return 80
		case dueThisWeek:
			return 70
		case started:
			return 60
		default:
			return 50
		}
	}

	switch {
	case overdue:
		return 45
	case started && dueToday:
		return 40
	case started && dueThisWeek:
		return 35
	case dueToday:
		return 30
	case dueThisWeek:
		return 25
	case startsThisWeek:
		return 20
	case dueLater:
		return 15
	case started:
		return 10
	default:
		return 5
	}
}

// inWeek reports d in (today, endOfWeek].
func inWeek(d, today, endOfWeek model.Date) bool {
	return d.After(today) && !d.After(endOfWeek)
}

type scored struct {
	task  model.Task
	score int
}

// RankByPriority orders tasks by score descending. Ties go to the earlier due
// date (undated last), then the older task.
func RankByPriority(tasks []model.Task, today model.Date) []model.Task {
	eow := EndOfWeek(today)
	items := make([]scored, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, scored{task: t, score: Priority(t, today, eow)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.score != b.score {
			return a.score > b.score
		}
		switch {
		case a.task.DueDate != nil && b.task.DueDate == nil:
			return true
		case a.task.DueDate == nil && b.task.DueDate != nil:
			return false
		case a.task.DueDate != nil && b.task.DueDate != nil && !a.task.DueDate.Equal(*b.task.DueDate):
			return a.task.DueDate.Before(*b.task.DueDate)
		}
		return a.task.CreatedAt.Before(b.task.CreatedAt)
	})
	out := make([]model.Task, 0, len(items))
	for _, it := range items {
		out = append(out, it.task)
	}
	return out
}
