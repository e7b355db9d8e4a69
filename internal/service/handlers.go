package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tempo/internal/commands"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/storage"
)

var ErrAmbiguousRef = errors.New("service: ambiguous task reference")

// Resolve finds a task by full id or by a unique id prefix.
func (s *Service) Resolve(ctx context.Context, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, storage.ErrNotFound
	}
	task, err := s.repo.GetTask(ctx, ref)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return model.Task{}, err
	}
	all, err := s.Tasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	var match *model.Task
	for i := range all {
		if !strings.HasPrefix(all[i].ID, ref) {
			continue
		}
		if match != nil {
			return model.Task{}, fmt.Errorf("%w: %q", ErrAmbiguousRef, ref)
		}
		match = &all[i]
	}
	if match == nil {
		return model.Task{}, fmt.Errorf("%w: %q", storage.ErrNotFound, ref)
	}
	return *match, nil
}

// Handlers binds palette commands to the service. Plan proposes and accepts
// in one step; interactive callers replace it to review the proposal first.
func (s *Service) Handlers(ctx context.Context) commands.Handlers {
	withTask := func(ref string, fn func(model.Task) (string, error)) (commands.Result, error) {
		task, err := s.Resolve(ctx, ref)
		if err != nil {
			return commands.Result{}, err
		}
		msg, err := fn(task)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: msg}, nil
	}

	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, clones, err := s.Create(ctx, model.Task{Title: args.Title, DueDate: args.Due})
			if err != nil {
				return commands.Result{}, err
			}
			msg := fmt.Sprintf("added %s %q", task.ID, task.Title)
			if len(clones) > 0 {
				msg += fmt.Sprintf(" (+%d occurrences)", len(clones))
			}
			return commands.Result{Message: msg}, nil
		},
		Plan: func(args commands.PlanArgs) (commands.Result, error) {
			proposal, err := s.PlanMyDay(ctx, args.Minutes)
			if err != nil {
				return commands.Result{}, err
			}
			n, err := s.AcceptPlan(ctx, proposal)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("planned %d tasks, %d of %d minutes", n, proposal.TotalMinutes(), args.Minutes)}, nil
		},
		Schedule: func(args commands.ScheduleArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				updated, err := s.Schedule(ctx, t.ID, args.Date, args.Slot)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("scheduled %q on %s %s-%s", updated.Title, args.Date, updated.StartTime, updated.EndTime), nil
			})
		},
		Resize: func(args commands.ResizeArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				updated, err := s.Resize(ctx, t.ID, args.Minutes)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("resized %q to %s-%s", updated.Title, updated.StartTime, updated.EndTime), nil
			})
		},
		Unschedule: func(args commands.TargetArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				if _, err := s.Unschedule(ctx, t.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("unscheduled %q", t.Title), nil
			})
		},
		Due: func(args commands.DateArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				if _, err := s.SetDueDate(ctx, t.ID, args.Date); err != nil {
					return "", err
				}
				return fmt.Sprintf("due date of %q set to %s", t.Title, describeDate(args.Date)), nil
			})
		},
		Start: func(args commands.DateArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				if _, err := s.SetStartDate(ctx, t.ID, args.Date); err != nil {
					return "", err
				}
				return fmt.Sprintf("start date of %q set to %s", t.Title, describeDate(args.Date)), nil
			})
		},
		Done: func(args commands.TargetArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				_, clones, err := s.SetStatus(ctx, t.ID, model.StatusDone)
				if err != nil {
					return "", err
				}
				if len(clones) > 0 {
					return fmt.Sprintf("completed %q, %d new occurrences", t.Title, len(clones)), nil
				}
				return fmt.Sprintf("completed %q", t.Title), nil
			})
		},
		Focus: func(args commands.TargetArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				if _, err := s.AddToMyDay(ctx, t.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("%q added to My Day", t.Title), nil
			})
		},
		Dismiss: func(args commands.TargetArgs) (commands.Result, error) {
			return withTask(args.Target, func(t model.Task) (string, error) {
				if _, err := s.DismissFromMyDay(ctx, t.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("%q dismissed from My Day", t.Title), nil
			})
		},
	}
}

func describeDate(d *model.Date) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
