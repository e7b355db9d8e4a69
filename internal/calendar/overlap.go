package calendar

import "github.com/sandeepkv93/tempo/internal/model"

// Overlaps reports whether a and b sit on the same start date with
// intersecting [start, start+duration) intervals. Unscheduled tasks never
// overlap.
func Overlaps(a, b model.Task) bool {
	if a.StartDate == nil || b.StartDate == nil || !a.StartDate.Equal(*b.StartDate) {
		return false
	}
	as, ae, ok := Interval(a)
	if !ok {
		return false
	}
	bs, be, ok := Interval(b)
	if !ok {
		return false
	}
	return as < be && bs < ae
}

type Conflict struct {
	A, B model.Task
}

// FindOverlaps lists every colliding pair scheduled on date. The result is a
// warning for the view; it never blocks a drop.
func FindOverlaps(tasks []model.Task, date model.Date) []Conflict {
	layout := DayLayout(tasks, date)
	out := make([]Conflict, 0)
	for i := range layout {
		for j := i + 1; j < len(layout); j++ {
			if layout[j].Start >= layout[i].End {
				break
			}
			out = append(out, Conflict{A: layout[i].Task, B: layout[j].Task})
		}
	}
	return out
}

// ConflictsWith returns the tasks on t's start date that would collide with
// it, excluding t itself.
func ConflictsWith(t model.Task, tasks []model.Task) []model.Task {
	out := make([]model.Task, 0)
	for _, other := range tasks {
		if other.ID == t.ID {
			continue
		}
		if Overlaps(t, other) {
			out = append(out, other)
		}
	}
	return out
}
