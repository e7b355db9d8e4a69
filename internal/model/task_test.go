package model

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:          "task-1",
		Title:       "Write release notes",
		Status:      StatusTodo,
		EnergyLevel: EnergyMedium,
		StartDate:   NewDate(2025, 6, 10).Ptr(),
		StartTime:   "09:00",
		EndTime:     "10:30",
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsInvertedTimeRange(t *testing.T) {
	task := Task{Title: "Bad range", Status: StatusTodo, StartTime: "10:00", EndTime: "10:00"}
	err := task.Validate()
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{Title: "Bad status", Status: Status("archived")}
	if err := task.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusBacklog
	task.EnergyLevel = Energy("extreme")
	if err := task.Validate(); !errors.Is(err, ErrInvalidEnergy) {
		t.Fatalf("expected ErrInvalidEnergy, got: %v", err)
	}

	task.EnergyLevel = EnergyLow
	task.RecurrenceType = Cadence("yearly")
	if err := task.Validate(); !errors.Is(err, ErrInvalidCadence) {
		t.Fatalf("expected ErrInvalidCadence, got: %v", err)
	}

	task.RecurrenceType = CadenceWeekly
	task.StartTime = "9am"
	if err := task.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got: %v", err)
	}
}

func TestTaskValidateDoneRequiresCompletedAt(t *testing.T) {
	task := Task{Title: "Done task", Status: StatusDone}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task status is done" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskMinutesDefaults(t *testing.T) {
	cases := []struct {
		energy Energy
		want   int
	}{
		{EnergyHigh, 240},
		{EnergyMedium, 120},
		{EnergyLow, 30},
		{Energy(""), 60},
	}
	for _, tc := range cases {
		task := Task{EnergyLevel: tc.energy}
		if got := task.Minutes(); got != tc.want {
			t.Fatalf("Minutes() for %q = %d, want %d", tc.energy, got, tc.want)
		}
	}

	task := Task{EnergyLevel: EnergyHigh, TimeEstimate: intPtr(45)}
	if got := task.Minutes(); got != 45 {
		t.Fatalf("explicit estimate ignored: got %d", got)
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	orig := Task{
		StartDate:    NewDate(2025, 6, 10).Ptr(),
		TimeEstimate: intPtr(30),
		Dependencies: []string{"a"},
	}
	c := orig.Clone()
	c.StartDate.Day = 20
	*c.TimeEstimate = 90
	c.Dependencies[0] = "b"
	if orig.StartDate.Day != 10 || *orig.TimeEstimate != 30 || orig.Dependencies[0] != "a" {
		t.Fatalf("clone shares state with original: %+v", orig)
	}
}

func TestParseAndFormatClock(t *testing.T) {
	if got, ok := ParseClock("14:30"); !ok || got != 870 {
		t.Fatalf("ParseClock(14:30) = %d,%v", got, ok)
	}
	for _, bad := range []string{"", "9:30", "24:00", "12:60", "ab:cd"} {
		if _, ok := ParseClock(bad); ok {
			t.Fatalf("ParseClock(%q) should fail", bad)
		}
	}
	if got := FormatClock(545); got != "09:05" {
		t.Fatalf("FormatClock(545) = %q", got)
	}
}

func TestPatchApplyAndMerge(t *testing.T) {
	task := Task{Status: StatusBacklog, StartTime: "09:00", EndTime: "10:00"}
	p := TaskPatch{Status: SetField(StatusTodo)}
	p = p.Merge(TaskPatch{StartTime: SetField(""), EndTime: SetField("")})
	out := p.Apply(task)
	if out.Status != StatusTodo || out.StartTime != "" || out.EndTime != "" {
		t.Fatalf("unexpected patched task: %+v", out)
	}
	if task.Status != StatusBacklog {
		t.Fatal("apply mutated the input task")
	}
	if (TaskPatch{}).IsEmpty() != true || p.IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}
