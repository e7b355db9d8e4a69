// Package calendar places tasks on a day grid of fixed 30-minute slots and
// turns drag, resize and unschedule gestures into task field updates.
package calendar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sandeepkv93/tempo/internal/model"
)

const (
	SlotsPerDay = 48
	SlotMinutes = 30

	// DefaultDuration is used for a drop when the task has no time_estimate.
	DefaultDuration = 30
	// MinDuration is the floor a resize clamps to.
	MinDuration = 15

	lastMinute = 24*60 - 1
)

var (
	ErrInvalidSlot  = errors.New("calendar: slot out of range")
	ErrInvalidDate  = errors.New("calendar: drop date is required")
	ErrNotScheduled = errors.New("calendar: task has no start date and time")
)

// SlotStart returns the minutes since midnight at which slot i begins.
func SlotStart(i int) int {
	return i * SlotMinutes
}

// SlotOf returns the slot containing the given minute of the day.
func SlotOf(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > lastMinute {
		return SlotsPerDay - 1
	}
	return minutes / SlotMinutes
}

// DropOnSlot computes the updates for dropping t onto (date, slot). The end
// time is capped at 23:59 and time_estimate always matches end - start.
func DropOnSlot(t model.Task, date model.Date, slot int, today model.Date) (model.TaskPatch, error) {
	if slot < 0 || slot >= SlotsPerDay {
		return model.TaskPatch{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if date.IsZero() {
		return model.TaskPatch{}, ErrInvalidDate
	}

	duration := DefaultDuration
	if t.TimeEstimate != nil && *t.TimeEstimate > 0 {
		duration = *t.TimeEstimate
	}
	start := SlotStart(slot)
	end := clampEnd(start, start+duration)
	estimate := end - start

	patch := model.TaskPatch{
		StartDate:    model.SetField(date.Ptr()),
		StartTime:    model.SetField(model.FormatClock(start)),
		EndTime:      model.SetField(model.FormatClock(end)),
		TimeEstimate: model.SetField(&estimate),
	}
	if t.DueDate == nil {
		patch.DueDate = model.SetField(date.Ptr())
	}
	if t.Status == model.StatusBacklog {
		patch.Status = model.SetField(model.StatusTodo)
	}
	if date.Equal(today) {
		patch.MyDayDate = model.SetField(today.Ptr())
	}
	return patch, nil
}

// Unschedule clears the clock times and keeps both dates.
func Unschedule(model.Task) model.TaskPatch {
	return model.TaskPatch{
		StartTime: model.SetField(""),
		EndTime:   model.SetField(""),
	}
}

// Interval returns the [start, end) minutes a scheduled task occupies.
func Interval(t model.Task) (start, end int, ok bool) {
	if t.StartDate == nil {
		return 0, 0, false
	}
	start, ok = model.ParseClock(t.StartTime)
	if !ok {
		return 0, 0, false
	}
	if e, ok := model.ParseClock(t.EndTime); ok && e > start {
		return start, e, true
	}
	duration := DefaultDuration
	if t.TimeEstimate != nil && *t.TimeEstimate > 0 {
		duration = *t.TimeEstimate
	}
	return start, start + duration, true
}

// Week returns Monday through Sunday of the week containing anchor.
func Week(anchor model.Date) [7]model.Date {
	offset := (int(anchor.Weekday()) + 6) % 7
	monday := anchor.AddDays(-offset)
	var out [7]model.Date
	for i := range out {
		out[i] = monday.AddDays(i)
	}
	return out
}

// Placement is one scheduled task laid out on a day.
type Placement struct {
	Task      model.Task
	Start     int
	End       int
	FirstSlot int
	LastSlot  int
	Overlaps  bool
}

// Covers reports whether the placement occupies slot.
func (p Placement) Covers(slot int) bool {
	return slot >= p.FirstSlot && slot <= p.LastSlot
}

// DayLayout returns the tasks scheduled on date ordered by start minute,
// flagging the ones that collide with another task.
func DayLayout(tasks []model.Task, date model.Date) []Placement {
	out := make([]Placement, 0)
	for _, t := range tasks {
		if t.StartDate == nil || !t.StartDate.Equal(date) {
			continue
		}
		start, end, ok := Interval(t)
		if !ok {
			continue
		}
		out = append(out, Placement{
			Task:      t,
			Start:     start,
			End:       end,
			FirstSlot: SlotOf(start),
			LastSlot:  SlotOf(end - 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Task.ID < out[j].Task.ID
	})
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].Start >= out[i].End {
				break
			}
			out[i].Overlaps = true
			out[j].Overlaps = true
		}
	}
	return out
}

func clampEnd(start, end int) int {
	if end > lastMinute {
		end = lastMinute
	}
	if end <= start {
		end = start + 1
	}
	return end
}
