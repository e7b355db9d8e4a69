package planner

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/tempo/internal/classify"
	"github.com/sandeepkv93/tempo/internal/model"
)

// MaxPlanTasks caps a single Plan My Day proposal.
const MaxPlanTasks = 10

var ErrIndexOutOfRange = errors.New("planner: index out of range")

type PlanOptions struct {
	MaxTasks int
	// SkipBlocked leaves tasks with unfinished dependencies out of the plan.
	SkipBlocked bool
}

func DefaultPlanOptions() PlanOptions {
	return PlanOptions{MaxTasks: MaxPlanTasks, SkipBlocked: true}
}

// Eligible returns the tasks a plan may draw from: not done, not already
// explicitly in today's focus, and optionally not blocked.
func Eligible(all []model.Task, today model.Date, opts PlanOptions) []model.Task {
	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if t.IsDone() {
			continue
		}
		if t.MyDayDate != nil && t.MyDayDate.Equal(today) {
			continue
		}
		if opts.SkipBlocked && classify.IsBlocked(t, all) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// PlanMyDay builds a greedy, priority-ordered proposal that fits the budget.
// Tasks that do not fit the remaining minutes are skipped, never squeezed in,
// so the total never exceeds budgetMinutes.
func PlanMyDay(budgetMinutes int, eligible []model.Task, today model.Date, opts PlanOptions) *Proposal {
	maxTasks := opts.MaxTasks
	if maxTasks <= 0 {
		maxTasks = MaxPlanTasks
	}
	p := &Proposal{Budget: budgetMinutes}
	remaining := budgetMinutes
	for _, t := range RankByPriority(eligible, today) {
		if len(p.tasks) >= maxTasks || remaining <= 0 {
			break
		}
		minutes := t.Minutes()
		if minutes > remaining {
			continue
		}
		p.tasks = append(p.tasks, t)
		remaining -= minutes
	}
	return p
}

// Proposal is an editable plan. The user reorders or drops entries before
// accepting it.
type Proposal struct {
	Budget int
	tasks  []model.Task
}

func (p *Proposal) Tasks() []model.Task {
	return append([]model.Task(nil), p.tasks...)
}

func (p *Proposal) Len() int { return len(p.tasks) }

func (p *Proposal) TotalMinutes() int {
	total := 0
	for _, t := range p.tasks {
		total += t.Minutes()
	}
	return total
}

func (p *Proposal) Remaining() int {
	return p.Budget - p.TotalMinutes()
}

// Promote moves entry i one place up.
func (p *Proposal) Promote(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	p.tasks[i-1], p.tasks[i] = p.tasks[i], p.tasks[i-1]
	return nil
}

// Demote moves entry i one place down.
func (p *Proposal) Demote(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	if i == len(p.tasks)-1 {
		return nil
	}
	p.tasks[i+1], p.tasks[i] = p.tasks[i], p.tasks[i+1]
	return nil
}

func (p *Proposal) Remove(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
	return nil
}

// PlanUpdate is the field update that puts one task into today's focus list.
type PlanUpdate struct {
	TaskID string
	Patch  model.TaskPatch
}

// Accept turns the proposal into my_day_date updates, in proposal order.
func (p *Proposal) Accept(today model.Date) []PlanUpdate {
	out := make([]PlanUpdate, 0, len(p.tasks))
	for _, t := range p.tasks {
		out = append(out, PlanUpdate{
			TaskID: t.ID,
			Patch:  model.TaskPatch{MyDayDate: model.SetField(today.Ptr())},
		})
	}
	return out
}

func (p *Proposal) check(i int) error {
	if i < 0 || i >= len(p.tasks) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(p.tasks))
	}
	return nil
}
