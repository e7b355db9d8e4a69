package model

import "time"

// Field is an optional assignment inside a TaskPatch. Set with a zero or nil
// Value clears the column.
type Field[T any] struct {
	Set   bool
	Value T
}

func SetField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// TaskPatch is a set of plain field updates written back to the task store.
type TaskPatch struct {
	Status       Field[Status]
	StartDate    Field[*Date]
	DueDate      Field[*Date]
	StartTime    Field[string]
	EndTime      Field[string]
	TimeEstimate Field[*int]
	MyDayDate    Field[*Date]
	CompletedAt  Field[*time.Time]
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Status.Set && !p.StartDate.Set && !p.DueDate.Set && !p.StartTime.Set &&
		!p.EndTime.Set && !p.TimeEstimate.Set && !p.MyDayDate.Set && !p.CompletedAt.Set
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Status.Set {
		out.Status = p.Status.Value
	}
	if p.StartDate.Set {
		out.StartDate = copyDate(p.StartDate.Value)
	}
	if p.DueDate.Set {
		out.DueDate = copyDate(p.DueDate.Value)
	}
	if p.StartTime.Set {
		out.StartTime = p.StartTime.Value
	}
	if p.EndTime.Set {
		out.EndTime = p.EndTime.Value
	}
	if p.TimeEstimate.Set {
		if p.TimeEstimate.Value == nil {
			out.TimeEstimate = nil
		} else {
			v := *p.TimeEstimate.Value
			out.TimeEstimate = &v
		}
	}
	if p.MyDayDate.Set {
		out.MyDayDate = copyDate(p.MyDayDate.Value)
	}
	if p.CompletedAt.Set {
		if p.CompletedAt.Value == nil {
			out.CompletedAt = nil
		} else {
			v := *p.CompletedAt.Value
			out.CompletedAt = &v
		}
	}
	return out
}

// Merge overlays other on p; fields set in other win.
func (p TaskPatch) Merge(other TaskPatch) TaskPatch {
	if other.Status.Set {
		p.Status = other.Status
	}
	if other.StartDate.Set {
		p.StartDate = other.StartDate
	}
	if other.DueDate.Set {
		p.DueDate = other.DueDate
	}
	if other.StartTime.Set {
		p.StartTime = other.StartTime
	}
	if other.EndTime.Set {
		p.EndTime = other.EndTime
	}
	if other.TimeEstimate.Set {
		p.TimeEstimate = other.TimeEstimate
	}
	if other.MyDayDate.Set {
		p.MyDayDate = other.MyDayDate
	}
	if other.CompletedAt.Set {
		p.CompletedAt = other.CompletedAt
	}
	return p
}
