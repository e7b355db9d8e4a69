package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/sandeepkv93/tempo/internal/calendar"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/storage"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// Tuesday 2025-06-10, 08:00 local.
var now = time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)

func setupService(t *testing.T) (*Service, *test.Hook) {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return New(repo, fixedClock{now: now}, logger, DefaultOptions()), hook
}

func intPtr(v int) *int { return &v }

func TestScheduleAndResizeKeepTimesConsistent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	task, _, err := svc.Create(ctx, model.Task{Title: "deep work", TimeEstimate: intPtr(60)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != model.StatusBacklog {
		t.Fatalf("expected default backlog status, got %s", task.Status)
	}

	today := svc.Today()
	scheduled, err := svc.Schedule(ctx, task.ID, today, 18)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if scheduled.StartTime != "09:00" || scheduled.EndTime != "10:00" || scheduled.Status != model.StatusTodo {
		t.Fatalf("unexpected scheduled task: %+v", scheduled)
	}
	stored, err := svc.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.MyDayDate == nil || !stored.MyDayDate.Equal(today) || !stored.DueDate.Equal(today) {
		t.Fatalf("drop on today should set due and my day: %+v", stored)
	}

	session, err := calendar.BeginResize(stored, 2)
	if err != nil {
		t.Fatalf("begin resize: %v", err)
	}
	session.Move(3)
	resized, err := svc.CommitResize(ctx, session)
	if err != nil {
		t.Fatalf("commit resize: %v", err)
	}
	if resized.EndTime != "11:00" || *resized.TimeEstimate != 120 {
		t.Fatalf("unexpected resize result: %+v", resized)
	}

	shrunk, err := svc.Resize(ctx, task.ID, 5)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if shrunk.EndTime != "09:15" || *shrunk.TimeEstimate != 15 {
		t.Fatalf("expected 15 minute floor, got %+v", shrunk)
	}

	un, err := svc.Unschedule(ctx, task.ID)
	if err != nil {
		t.Fatalf("unschedule: %v", err)
	}
	if un.StartTime != "" || un.EndTime != "" || un.StartDate == nil {
		t.Fatalf("unexpected unscheduled task: %+v", un)
	}
}

func TestCreateRecurringMaterializesOccurrences(t *testing.T) {
	svc, hook := setupService(t)
	ctx := context.Background()
	start := svc.Today()
	parent, clones, err := svc.Create(ctx, model.Task{
		Title:           "standup",
		Status:          model.StatusTodo,
		StartDate:       &start,
		RecurrenceType:  model.CadenceDaily,
		RecurrenceCount: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(clones) != 3 || clones[0].ParentID != parent.ID || clones[0].StartDate.String() != "2025-06-11" {
		t.Fatalf("unexpected clones: %+v", clones)
	}
	all, err := svc.Tasks(ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("expected 4 stored tasks, got %d (%v)", len(all), err)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "materialized occurrences" || entry.Data["count"] != 3 {
		t.Fatalf("unexpected last log entry: %+v", entry)
	}
}

func TestCompletingRecurringTaskReplenishesOnlyWhenSeriesIsExhausted(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	start := svc.Today()
	parent, clones, err := svc.Create(ctx, model.Task{
		Title:           "water plants",
		Status:          model.StatusTodo,
		StartDate:       &start,
		RecurrenceType:  model.CadenceWeekly,
		RecurrenceCount: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, more, err := svc.SetStatus(ctx, parent.ID, model.StatusDone)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CompletedAt == nil || len(more) != 0 {
		t.Fatalf("expected completion without new occurrences, got %+v / %d", done, len(more))
	}

	_, more, err = svc.SetStatus(ctx, clones[0].ID, model.StatusDone)
	if err != nil || len(more) != 0 {
		t.Fatalf("an open later occurrence should block replenish, got %d (%v)", len(more), err)
	}

	last := clones[len(clones)-1]
	if !last.IsRecurring() || last.RecurrenceCount != 2 {
		t.Fatalf("occurrence should keep the cadence: %+v", last)
	}
	_, more, err = svc.SetStatus(ctx, last.ID, model.StatusDone)
	if err != nil {
		t.Fatalf("complete last occurrence: %v", err)
	}
	if len(more) != 2 || more[0].StartDate.String() != "2025-07-01" || more[1].StartDate.String() != "2025-07-08" {
		t.Fatalf("expected series to continue after the last occurrence, got %+v", more)
	}
	if more[0].ParentID != parent.ID || !more[0].IsRecurring() {
		t.Fatalf("new occurrences should join the original series: %+v", more[0])
	}

	if _, _, err := svc.SetStatus(ctx, parent.ID, model.StatusTodo); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reopened, _ := svc.Get(ctx, parent.ID)
	if reopened.CompletedAt != nil {
		t.Fatal("reopening should clear completed_at")
	}
	_, more, err = svc.SetStatus(ctx, parent.ID, model.StatusDone)
	if err != nil || len(more) != 0 {
		t.Fatalf("pending occurrences should block a second replenish, got %d (%v)", len(more), err)
	}
}

func TestPlanAcceptAndDismiss(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	today := svc.Today()
	yesterday := today.AddDays(-1)

	urgent, _, _ := svc.Create(ctx, model.Task{Title: "urgent", Status: model.StatusTodo, DueDate: &yesterday, TimeEstimate: intPtr(60)})
	big, _, _ := svc.Create(ctx, model.Task{Title: "big", Status: model.StatusTodo, EnergyLevel: model.EnergyHigh})
	small, _, _ := svc.Create(ctx, model.Task{Title: "small", Status: model.StatusBacklog, TimeEstimate: intPtr(30)})

	if _, err := svc.PlanMyDay(ctx, 0); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
	proposal, err := svc.PlanMyDay(ctx, 120)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	tasks := proposal.Tasks()
	if len(tasks) != 2 || tasks[0].ID != urgent.ID || tasks[1].ID != small.ID {
		t.Fatalf("unexpected proposal: %+v", tasks)
	}
	n, err := svc.AcceptPlan(ctx, proposal)
	if err != nil || n != 2 {
		t.Fatalf("accept: %d %v", n, err)
	}

	feed, err := svc.MyDay(ctx)
	if err != nil {
		t.Fatalf("my day: %v", err)
	}
	inFocus := 0
	for _, item := range feed {
		if item.InFocus {
			inFocus++
		}
		if item.Task.ID == big.ID && item.InFocus {
			t.Fatal("big task was never planned")
		}
	}
	if inFocus != 2 {
		t.Fatalf("expected 2 focus tasks, got %d", inFocus)
	}

	dismissed, err := svc.DismissFromMyDay(ctx, small.ID)
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !dismissed.MyDayDate.Equal(yesterday) {
		t.Fatalf("expected yesterday marker, got %v", dismissed.MyDayDate)
	}
	again, err := svc.PlanMyDay(ctx, 600)
	if err != nil {
		t.Fatalf("replan: %v", err)
	}
	for _, task := range again.Tasks() {
		if task.ID == urgent.ID {
			t.Fatal("task already in today's focus was proposed again")
		}
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := setupService(t)
	if _, _, err := svc.SetStatus(context.Background(), "x", model.Status("archived")); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

type failingRepo struct {
	storage.Repository
	task model.Task
}

func (f failingRepo) GetTask(context.Context, string) (model.Task, error) { return f.task, nil }

func (f failingRepo) UpdateFields(context.Context, string, model.TaskPatch) error {
	return errors.New("disk full")
}

func TestFailedWriteIsReturnedAndLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	repo := failingRepo{task: model.Task{ID: "t1", Title: "x", Status: model.StatusTodo}}
	svc := New(repo, fixedClock{now: now}, logger, DefaultOptions())

	if _, err := svc.Schedule(context.Background(), "t1", svc.Today(), 4); err == nil {
		t.Fatal("expected write failure")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.ErrorLevel || entry.Data["task"] != "t1" {
		t.Fatalf("expected error log for failed write, got %+v", entry)
	}
}

func TestConflicts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	today := svc.Today()
	a, _, _ := svc.Create(ctx, model.Task{Title: "a", Status: model.StatusTodo, TimeEstimate: intPtr(60)})
	b, _, _ := svc.Create(ctx, model.Task{Title: "b", Status: model.StatusTodo, TimeEstimate: intPtr(30)})
	if _, err := svc.Schedule(ctx, a.ID, today, 20); err != nil {
		t.Fatalf("schedule a: %v", err)
	}
	if _, err := svc.Schedule(ctx, b.ID, today, 21); err != nil {
		t.Fatalf("schedule b: %v", err)
	}
	conflicts, err := svc.Conflicts(ctx, today)
	if err != nil || len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d (%v)", len(conflicts), err)
	}
}
