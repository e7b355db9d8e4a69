package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
)

var opts = parse.Options{Today: model.NewDate(2025, 6, 10), Format: parse.FormatDMY}

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent tomorrow", TypeAdd},
		{"plan 240", TypePlan},
		{"schedule t1 next friday 9am", TypeSchedule},
		{"resize t1 1h30m", TypeResize},
		{"due t1 end of month", TypeDue},
		{"start t1 T+2", TypeStart},
		{"done t1", TypeDone},
		{"unschedule t1", TypeUnschedule},
		{"focus t1", TypeFocus},
		{"/dismiss t1", TypeDismiss},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in, opts)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddExtractsDueDate(t *testing.T) {
	cmd, err := Parse("add pay rent tomorrow", opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Title != "pay rent" || cmd.Add.Due == nil || cmd.Add.Due.String() != "2025-06-11" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("add write docs", opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Title != "write docs" || cmd.Add.Due != nil {
		t.Fatalf("unexpected add args without date: %+v", cmd.Add)
	}

	cmd, err = Parse("add today", opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Title != "today" || cmd.Add.Due != nil {
		t.Fatalf("a bare date phrase should stay the title: %+v", cmd.Add)
	}
}

func TestParseScheduleResolvesSlot(t *testing.T) {
	cmd, err := Parse("schedule t1 next friday 930", opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := cmd.Schedule
	if s.Target != "t1" || s.Date.String() != "2025-06-20" || s.Slot != 19 {
		t.Fatalf("unexpected schedule args: %+v", s)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"plan",
		"plan soon",
		"plan -5",
		"schedule t1 9am",
		"schedule t1 someday 9am",
		"schedule t1 tomorrow 25:00",
		"due t1 1/13",
		"done",
		"done a b",
		"resize t1",
	} {
		_, err := Parse(in, opts)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseDateNoneClears(t *testing.T) {
	cmd, err := Parse("due t1 none", opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Date.Target != "t1" || cmd.Date.Date != nil {
		t.Fatalf("expected cleared date, got %+v", cmd.Date)
	}
}

func TestParsePlanDurations(t *testing.T) {
	for in, want := range map[string]int{"plan 90": 90, "plan 4h": 240, "plan 1h30m": 90} {
		cmd, err := Parse(in, opts)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if cmd.Plan.Minutes != want {
			t.Fatalf("parse %q = %d, want %d", in, cmd.Plan.Minutes, want)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x", opts)
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	_, err = Parse("  / ", opts)
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs", opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteRoutesTargetCommands(t *testing.T) {
	seen := ""
	record := func(name string) func(TargetArgs) (Result, error) {
		return func(a TargetArgs) (Result, error) {
			seen = name + ":" + a.Target
			return Result{}, nil
		}
	}
	h := Handlers{Done: record("done"), Focus: record("focus"), Dismiss: record("dismiss"), Unschedule: record("unschedule")}
	for _, in := range []string{"done x", "focus x", "dismiss x", "unschedule x"} {
		cmd, err := Parse(in, opts)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, h); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
		if want := string(cmd.Type) + ":x"; seen != want {
			t.Fatalf("execute %q reached %q", in, seen)
		}
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("start t1 tomorrow", opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{Due: func(DateArgs) (Result, error) { return Result{}, nil }})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
