package scheduler

import (
	"time"

	"github.com/sandeepkv93/tempo/internal/model"
)

// NextMidnight is the first local midnight strictly after now.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

func RolloverEvent(now time.Time) Event {
	at := NextMidnight(now)
	return Event{ID: "rollover:" + at.Format("2006-01-02"), Kind: KindRollover, At: at}
}

// SlotStartEvent builds the event for a task's scheduled start in loc. It
// reports false for tasks without a start date and time or already started.
func SlotStartEvent(t model.Task, now time.Time, loc *time.Location) (Event, bool) {
	if t.StartDate == nil || t.IsDone() {
		return Event{}, false
	}
	minutes, ok := model.ParseClock(t.StartTime)
	if !ok {
		return Event{}, false
	}
	d := *t.StartDate
	at := time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc)
	if !at.After(now) {
		return Event{}, false
	}
	return Event{ID: "slot:" + t.ID + ":" + at.Format(time.RFC3339), TaskID: t.ID, Kind: KindSlotStart, At: at}, true
}

// SyncSlots replaces every queued slot_start event with the ones derived from
// tasks and returns how many were queued.
func (e *Engine) SyncSlots(tasks []model.Task, now time.Time) (int, error) {
	e.Cancel(func(ev Event) bool { return ev.Kind == KindSlotStart })
	queued := 0
	for _, t := range tasks {
		ev, ok := SlotStartEvent(t, now, now.Location())
		if !ok {
			continue
		}
		if err := e.Schedule(ev); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}
