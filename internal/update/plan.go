package update

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/planner"
	"github.com/sandeepkv93/tempo/internal/views"
)

func (m Model) handlePlanKey(msg tea.KeyMsg) Model {
	if m.Plan.Editing {
		return m.handleBudgetKey(msg)
	}
	p := m.Plan.Proposal
	if p == nil {
		return m.switchView(ViewPlan)
	}

	var err error
	switch msg.String() {
	case "up", "k":
		if m.Plan.Cursor > 0 {
			m.Plan.Cursor--
		}
	case "down", "j":
		if m.Plan.Cursor < p.Len()-1 {
			m.Plan.Cursor++
		}
	case "K":
		if err = p.Promote(m.Plan.Cursor); err == nil && m.Plan.Cursor > 0 {
			m.Plan.Cursor--
		}
	case "J":
		if err = p.Demote(m.Plan.Cursor); err == nil && m.Plan.Cursor < p.Len()-1 {
			m.Plan.Cursor++
		}
	case "x", "delete":
		if err = p.Remove(m.Plan.Cursor); err == nil {
			m.Plan.Cursor = clamp(m.Plan.Cursor, p.Len())
		}
	case "b":
		m.Plan.Proposal = nil
		return m.switchView(ViewPlan)
	case "a", "enter":
		n, acceptErr := m.svc.AcceptPlan(m.ctx, p)
		m.reload()
		if acceptErr != nil {
			m.fail(acceptErr)
			return m
		}
		m.Plan.Proposal = nil
		m.Plan.Cursor = 0
		m.ok("accepted %d tasks into my day", n)
		return m.switchView(ViewMyDay)
	case "esc":
		m.Plan.Proposal = nil
		return m.switchView(ViewMyDay)
	}
	if err != nil && !errors.Is(err, planner.ErrIndexOutOfRange) {
		m.fail(err)
	}
	return m
}

func (m Model) handleBudgetKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Plan.Editing = false
		m.budgetInput.Blur()
		m.CurrentView = ViewMyDay
		return m
	case "enter":
		budget, err := strconv.Atoi(strings.TrimSpace(m.budgetInput.Value()))
		if err != nil || budget <= 0 {
			m.Status = StatusBar{Text: "budget must be a positive number of minutes", IsError: true}
			return m
		}
		return m.propose(budget)
	}
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m
			}
		}
	}
	var cmd tea.Cmd
	m.budgetInput, cmd = m.budgetInput.Update(msg)
	_ = cmd
	return m
}

// propose replaces the current proposal with a fresh plan for budget.
func (m Model) propose(budget int) Model {
	proposal, err := m.svc.PlanMyDay(m.ctx, budget)
	if err != nil {
		m.fail(err)
		return m
	}
	m.CurrentView = ViewPlan
	m.Plan.Budget = budget
	m.Plan.Proposal = proposal
	m.Plan.Cursor = 0
	m.Plan.Editing = false
	m.budgetInput.Blur()
	m.ok("proposed %d tasks for %dm", proposal.Len(), budget)
	return m
}

func (m Model) renderPlanView() string {
	data := views.PlanPanelData{
		BudgetView: m.budgetInput.View(),
		Editing:    m.Plan.Editing || m.Plan.Proposal == nil,
		Budget:     m.Plan.Budget,
		Cursor:     m.Plan.Cursor,
	}
	if p := m.Plan.Proposal; p != nil {
		eow := planner.EndOfWeek(m.today)
		for _, t := range p.Tasks() {
			data.Items = append(data.Items, views.PlanItemData{
				ID:      t.ID,
				Title:   t.Title,
				Minutes: t.Minutes(),
				Score:   planner.Priority(t, m.today, eow),
			})
		}
		data.Total = p.TotalMinutes()
	}
	return views.RenderPlanPanel(data)
}
