// Package service is the write path between the scheduling core and the task
// store. Every operation computes a field patch with the pure packages and
// persists it in one repository call; a failed write is returned unchanged
// and nothing is retried.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/tempo/internal/calendar"
	"github.com/sandeepkv93/tempo/internal/classify"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/planner"
	"github.com/sandeepkv93/tempo/internal/recurrence"
	"github.com/sandeepkv93/tempo/internal/storage"
)

var ErrInvalidBudget = errors.New("service: budget must be positive")

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Options struct {
	Focus     classify.FocusPolicy
	Plan      planner.PlanOptions
	FeedLimit int
}

func DefaultOptions() Options {
	return Options{
		Focus:     classify.DefaultFocusPolicy(),
		Plan:      planner.DefaultPlanOptions(),
		FeedLimit: 5,
	}
}

type Service struct {
	repo   storage.Repository
	clock  Clock
	logger log.FieldLogger
	opts   Options
}

func New(repo storage.Repository, clock Clock, logger log.FieldLogger, opts Options) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Service{repo: repo, clock: clock, logger: logger, opts: opts}
}

// Today is the local calendar date of the injected clock.
func (s *Service) Today() model.Date {
	return model.DateOf(s.clock.Now())
}

func (s *Service) Now() time.Time { return s.clock.Now() }

func (s *Service) Options() Options { return s.opts }

func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListTasks(ctx, storage.TaskListFilter{})
}

func (s *Service) Get(ctx context.Context, id string) (model.Task, error) {
	return s.repo.GetTask(ctx, id)
}

// Create stores a new task. A recurring task also gets its future occurrences
// materialized in the same call.
func (s *Service) Create(ctx context.Context, in model.Task) (model.Task, []model.Task, error) {
	if in.Status == "" {
		in.Status = model.StatusBacklog
	}
	if in.Status == model.StatusDone && in.CompletedAt == nil {
		now := s.clock.Now().UTC()
		in.CompletedAt = &now
	}
	if err := in.Validate(); err != nil {
		return model.Task{}, nil, err
	}
	created, err := s.repo.CreateTask(ctx, in)
	if err != nil {
		s.logger.WithError(err).WithField("title", in.Title).Error("failed to create task")
		return model.Task{}, nil, fmt.Errorf("create task: %w", err)
	}
	clones, err := s.materialize(ctx, recurrence.Materialize(created, s.Today()))
	if err != nil {
		return created, nil, err
	}
	return created, clones, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// Schedule drops a task onto a slot of the calendar grid.
func (s *Service) Schedule(ctx context.Context, id string, date model.Date, slot int) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	patch, err := calendar.DropOnSlot(task, date, slot, s.Today())
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, patch)
}

// Resize sets an explicit duration on a scheduled task.
func (s *Service) Resize(ctx context.Context, id string, minutes int) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	patch, err := calendar.ResizeTo(task, minutes)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, patch)
}

// CommitResize persists the result of an interactive resize session.
func (s *Service) CommitResize(ctx context.Context, session *calendar.ResizeSession) (model.Task, error) {
	patch, err := session.Commit()
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, session.Task(), patch)
}

func (s *Service) Unschedule(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, calendar.Unschedule(task))
}

// SetStatus moves a task across the board. Completing any occurrence of a
// recurring series replenishes it when no open occurrence is left.
func (s *Service) SetStatus(ctx context.Context, id string, status model.Status) (model.Task, []model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, nil, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, nil, err
	}
	patch := model.TaskPatch{Status: model.SetField(status)}
	switch {
	case status == model.StatusDone && !task.IsDone():
		now := s.clock.Now().UTC()
		patch.CompletedAt = model.SetField(&now)
	case status != model.StatusDone && task.CompletedAt != nil:
		patch.CompletedAt = model.SetField[*time.Time](nil)
	}
	updated, err := s.write(ctx, task, patch)
	if err != nil {
		return model.Task{}, nil, err
	}
	if status != model.StatusDone || task.IsDone() || !updated.IsRecurring() {
		return updated, nil, nil
	}

	members, err := s.seriesMembers(ctx, updated)
	if err != nil {
		return updated, nil, err
	}
	clones, err := s.materialize(ctx, recurrence.Replenish(updated, members, s.Today()))
	if err != nil {
		return updated, nil, err
	}
	return updated, clones, nil
}

func (s *Service) SetStartDate(ctx context.Context, id string, d *model.Date) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, model.TaskPatch{StartDate: model.SetField(d)})
}

func (s *Service) SetDueDate(ctx context.Context, id string, d *model.Date) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, model.TaskPatch{DueDate: model.SetField(d)})
}

// AddToMyDay marks the task as explicitly included in today's focus list.
func (s *Service) AddToMyDay(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, model.TaskPatch{MyDayDate: model.SetField(s.Today().Ptr())})
}

// DismissFromMyDay stamps yesterday's date. A past marker keeps the task out
// of the focus list, even when its dates would otherwise pull it in, until it
// is added to My Day again.
func (s *Service) DismissFromMyDay(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return s.write(ctx, task, model.TaskPatch{MyDayDate: model.SetField(s.Today().AddDays(-1).Ptr())})
}

func (s *Service) AddDependency(ctx context.Context, taskID, dependsOnID string) error {
	if taskID == dependsOnID {
		return errors.New("service: a task cannot depend on itself")
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return err
	}
	return s.repo.AddDependency(ctx, taskID, dependsOnID)
}

// MyDay returns today's focus list followed by recommendations.
func (s *Service) MyDay(ctx context.Context) ([]planner.FeedItem, error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return planner.MyDayFeed(all, s.Today(), s.opts.Focus, s.opts.FeedLimit), nil
}

// PlanMyDay proposes a plan for budgetMinutes. Nothing is written until
// AcceptPlan.
func (s *Service) PlanMyDay(ctx context.Context, budgetMinutes int) (*planner.Proposal, error) {
	if budgetMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budgetMinutes)
	}
	all, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	today := s.Today()
	eligible := planner.Eligible(all, today, s.opts.Plan)
	proposal := planner.PlanMyDay(budgetMinutes, eligible, today, s.opts.Plan)
	s.logger.WithFields(log.Fields{
		"budget":   budgetMinutes,
		"eligible": len(eligible),
		"proposed": proposal.Len(),
		"minutes":  proposal.TotalMinutes(),
	}).Debug("planned day")
	return proposal, nil
}

// AcceptPlan writes my_day_date for every proposed task. Writes are
// independent; the first failure stops the loop and is returned with the
// number of tasks already accepted.
func (s *Service) AcceptPlan(ctx context.Context, p *planner.Proposal) (int, error) {
	accepted := 0
	for _, u := range p.Accept(s.Today()) {
		if err := s.repo.UpdateFields(ctx, u.TaskID, u.Patch); err != nil {
			s.logger.WithError(err).WithField("task", u.TaskID).Error("failed to accept planned task")
			return accepted, fmt.Errorf("accept plan for %s: %w", u.TaskID, err)
		}
		accepted++
	}
	return accepted, nil
}

// Conflicts lists overlapping pairs on date for the calendar warning.
func (s *Service) Conflicts(ctx context.Context, date model.Date) ([]calendar.Conflict, error) {
	all, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.FindOverlaps(all, date), nil
}

func (s *Service) write(ctx context.Context, task model.Task, patch model.TaskPatch) (model.Task, error) {
	updated := patch.Apply(task)
	if err := updated.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.UpdateFields(ctx, task.ID, patch); err != nil {
		s.logger.WithError(err).WithField("task", task.ID).Error("failed to update task")
		return model.Task{}, fmt.Errorf("update task %s: %w", task.ID, err)
	}
	return updated, nil
}

// seriesMembers loads the original task of t's series and every clone of it.
func (s *Service) seriesMembers(ctx context.Context, t model.Task) ([]model.Task, error) {
	series := recurrence.SeriesID(t)
	members, err := s.repo.ListTasks(ctx, storage.TaskListFilter{ParentID: series})
	if err != nil {
		return nil, fmt.Errorf("list occurrences of %s: %w", series, err)
	}
	if series == t.ID {
		return members, nil
	}
	root, err := s.repo.GetTask(ctx, series)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return members, nil
	case err != nil:
		return nil, fmt.Errorf("load series %s: %w", series, err)
	}
	return append(members, root), nil
}

func (s *Service) materialize(ctx context.Context, clones []model.Task) ([]model.Task, error) {
	if len(clones) == 0 {
		return nil, nil
	}
	created, err := s.repo.CreateTasks(ctx, clones)
	if err != nil {
		s.logger.WithError(err).WithField("parent", clones[0].ParentID).Error("failed to materialize occurrences")
		return nil, fmt.Errorf("materialize occurrences: %w", err)
	}
	s.logger.WithFields(log.Fields{"parent": clones[0].ParentID, "count": len(created)}).Info("materialized occurrences")
	return created, nil
}
