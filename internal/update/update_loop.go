package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/scheduler"
	"github.com/sandeepkv93/tempo/internal/views"
)

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RefreshMsg reloads every task and recomputes the derived views.
type RefreshMsg struct{}

type EventMsg struct {
	Event scheduler.Event
}

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForEventCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		next := m.handleKey(typed)
		if next.Quitting {
			return next, tea.Quit
		}
		return next, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	case RefreshMsg:
		m.reload()
		return m, nil
	case EventMsg:
		m = m.handleEvent(typed.Event)
		if m.engine != nil {
			return m, waitForEventCmd(m.engine.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.CurrentView == ViewPlan && m.Plan.Editing {
		return m.handlePlanKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m
	case m.Keys.MyDay:
		return m.switchView(ViewMyDay)
	case m.Keys.Plan:
		return m.switchView(ViewPlan)
	case m.Keys.Calendar:
		return m.switchView(ViewCalendar)
	case m.Keys.Backlog:
		return m.switchView(ViewBacklog)
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m
	case m.Keys.Quit:
		m.Quitting = true
		return m
	}

	switch m.CurrentView {
	case ViewMyDay:
		return m.handleMyDayKey(msg)
	case ViewPlan:
		return m.handlePlanKey(msg)
	case ViewCalendar:
		return m.handleCalendarKey(msg)
	case ViewBacklog:
		return m.handleBacklogKey(msg)
	}
	return m
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	if v == ViewPlan && m.Plan.Proposal == nil {
		m.Plan.Editing = true
		m.budgetInput.SetValue(fmt.Sprint(m.Plan.Budget))
		m.budgetInput.Focus()
	}
	return m
}

func (m Model) View() string {
	left := ""
	switch m.CurrentView {
	case ViewMyDay:
		left = m.renderMyDayView()
	case ViewPlan:
		left = m.renderPlanView()
	case ViewCalendar:
		left = m.renderCalendarView()
	case ViewBacklog:
		left = m.renderBacklogView()
	}

	right := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
		m.renderHelpIfVisible(),
		m.renderEventLog(),
	}, "\n"))

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tempo | %s | view: %s", m.today, m.CurrentView),
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s my day | %s plan | %s calendar | %s backlog | / cmd | %s help | %s quit",
			m.Keys.MyDay, m.Keys.Plan, m.Keys.Calendar, m.Keys.Backlog, m.Keys.Help, m.Keys.Quit),
		Wide: m.CurrentView == ViewCalendar,
	})
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add pay rent friday"
	m.commandInput.CharLimit = 200

	m.budgetInput = textinput.New()
	m.budgetInput.Prompt = ""
	m.budgetInput.Placeholder = "minutes"
	m.budgetInput.CharLimit = 4
	m.budgetInput.SetValue(fmt.Sprint(m.Plan.Budget))

	m.backlogTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 24},
			{Title: "Due", Width: 10},
			{Title: "Est", Width: 5},
			{Title: "State", Width: 10},
		}),
		table.WithHeight(10),
	)
	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Backlog.Items))
	for _, item := range m.Backlog.Items {
		due := "-"
		if item.Task.DueDate != nil {
			due = item.Task.DueDate.String()
		}
		state := "waiting"
		switch {
		case len(item.Blockers) > 0:
			state = "blocked"
		case item.Ready:
			state = "ready"
		}
		rows = append(rows, table.Row{item.Task.Title, due, fmt.Sprintf("%dm", item.Task.Minutes()), state})
	}
	m.backlogTable.SetRows(rows)
	m.backlogTable.SetCursor(m.Backlog.Cursor)
}

func isKnownView(v View) bool {
	switch v {
	case ViewMyDay, ViewPlan, ViewCalendar, ViewBacklog:
		return true
	default:
		return false
	}
}
