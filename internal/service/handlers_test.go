package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/tempo/internal/commands"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
	"github.com/sandeepkv93/tempo/internal/storage"
)

func TestResolveByIDPrefix(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	task, _, err := svc.Create(ctx, model.Task{Title: "prefix me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Resolve(ctx, task.ID[:8])
	if err != nil || got.ID != task.ID {
		t.Fatalf("resolve by prefix: %+v %v", got, err)
	}
	if _, err := svc.Resolve(ctx, "zzzz"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Resolve(ctx, " "); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank ref, got %v", err)
	}
}

func TestHandlersRunPaletteCommands(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	handlers := svc.Handlers(ctx)
	opts := parse.Options{Today: svc.Today(), Format: parse.FormatDMY}

	run := func(line string) commands.Result {
		t.Helper()
		cmd, err := commands.Parse(line, opts)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		res, err := commands.Execute(cmd, handlers)
		if err != nil {
			t.Fatalf("execute %q: %v", line, err)
		}
		return res
	}

	res := run("add call the bank tomorrow")
	if !strings.Contains(res.Message, `"call the bank"`) {
		t.Fatalf("unexpected add result: %q", res.Message)
	}
	all, _ := svc.Tasks(ctx)
	if len(all) != 1 || all[0].DueDate == nil || all[0].DueDate.String() != "2025-06-11" {
		t.Fatalf("unexpected stored task: %+v", all)
	}
	id := all[0].ID

	run("schedule " + id[:8] + " today 14:00")
	got, _ := svc.Get(ctx, id)
	if got.StartTime != "14:00" || got.EndTime != "14:30" || got.MyDayDate == nil {
		t.Fatalf("unexpected scheduled task: %+v", got)
	}

	run("resize " + id + " 90")
	got, _ = svc.Get(ctx, id)
	if got.EndTime != "15:30" || *got.TimeEstimate != 90 {
		t.Fatalf("unexpected resized task: %+v", got)
	}

	run("due " + id + " none")
	got, _ = svc.Get(ctx, id)
	if got.DueDate != nil {
		t.Fatalf("expected cleared due date, got %v", got.DueDate)
	}

	res = run("done " + id)
	if !strings.HasPrefix(res.Message, "completed") {
		t.Fatalf("unexpected done result: %q", res.Message)
	}
	got, _ = svc.Get(ctx, id)
	if got.Status != model.StatusDone || got.CompletedAt == nil {
		t.Fatalf("expected completed task, got %+v", got)
	}
}

func TestHandlersPlanAcceptsProposal(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	if _, _, err := svc.Create(ctx, model.Task{Title: "a", Status: model.StatusTodo, TimeEstimate: intPtr(30)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := svc.Handlers(ctx).Plan(commands.PlanArgs{Minutes: 60})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.Message != "planned 1 tasks, 30 of 60 minutes" {
		t.Fatalf("unexpected plan result: %q", res.Message)
	}
}
