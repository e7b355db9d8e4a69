package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus    = errors.New("model: invalid task status")
	ErrInvalidEnergy    = errors.New("model: invalid task energy")
	ErrInvalidCadence   = errors.New("model: invalid recurrence cadence")
	ErrInvalidTimeRange = errors.New("model: end_time must be after start_time")
	ErrInvalidClock     = errors.New("model: invalid HH:MM time")
)

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

func (e Energy) IsValid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	default:
		return false
	}
}

// DefaultMinutes is the estimate used when a task has no explicit time_estimate.
func (e Energy) DefaultMinutes() int {
	switch e {
	case EnergyHigh:
		return 240
	case EnergyMedium:
		return 120
	case EnergyLow:
		return 30
	default:
		return 60
	}
}

type Task struct {
	ID                string
	Title             string
	Status            Status
	Critical          bool
	StartDate         *Date
	DueDate           *Date
	StartTime         string
	EndTime           string
	TimeEstimate      *int
	EnergyLevel       Energy
	MyDayDate         *Date
	Dependencies      []string
	RecurrenceType    Cadence
	RecurrenceCount   int
	RecurrenceEndDate *Date
	// ParentID links a materialized occurrence to the recurring task it was
	// cloned from.
	ParentID          string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

// Minutes returns the explicit estimate, or the energy-derived default.
func (t Task) Minutes() int {
	if t.TimeEstimate != nil && *t.TimeEstimate > 0 {
		return *t.TimeEstimate
	}
	return t.EnergyLevel.DefaultMinutes()
}

func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

func (t Task) IsRecurring() bool {
	return t.RecurrenceType != CadenceNone
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.EnergyLevel != "" && !t.EnergyLevel.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnergy, t.EnergyLevel)
	}
	if !t.RecurrenceType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCadence, t.RecurrenceType)
	}
	if t.TimeEstimate != nil && *t.TimeEstimate < 0 {
		return errors.New("model: time_estimate must not be negative")
	}
	if t.StartTime != "" {
		if _, ok := ParseClock(t.StartTime); !ok {
			return fmt.Errorf("%w: start_time %q", ErrInvalidClock, t.StartTime)
		}
	}
	if t.EndTime != "" {
		if _, ok := ParseClock(t.EndTime); !ok {
			return fmt.Errorf("%w: end_time %q", ErrInvalidClock, t.EndTime)
		}
	}
	if t.StartTime != "" && t.EndTime != "" {
		start, _ := ParseClock(t.StartTime)
		end, _ := ParseClock(t.EndTime)
		if end <= start {
			return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, t.StartTime, t.EndTime)
		}
	}
	if t.Status == StatusDone && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task status is done")
	}
	return nil
}

// Clone returns a deep copy so callers can mutate pointer fields safely.
func (t Task) Clone() Task {
	out := t
	out.StartDate = copyDate(t.StartDate)
	out.DueDate = copyDate(t.DueDate)
	out.MyDayDate = copyDate(t.MyDayDate)
	out.RecurrenceEndDate = copyDate(t.RecurrenceEndDate)
	if t.TimeEstimate != nil {
		v := *t.TimeEstimate
		out.TimeEstimate = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	if t.Dependencies != nil {
		out.Dependencies = append([]string(nil), t.Dependencies...)
	}
	return out
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// ParseClock reads a canonical HH:MM value as minutes since midnight.
func ParseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
