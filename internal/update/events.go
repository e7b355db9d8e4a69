package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/scheduler"
)

const eventLogSize = 20

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg{Event: ev}
	}
}

// handleEvent reacts to a timed event. Rollover recomputes every derived view
// for the new date and queues the following midnight.
func (m Model) handleEvent(ev scheduler.Event) Model {
	m.EventLog = append(m.EventLog, ev)
	if len(m.EventLog) > eventLogSize {
		m.EventLog = m.EventLog[len(m.EventLog)-eventLogSize:]
	}

	switch ev.Kind {
	case scheduler.KindRollover:
		previous := m.today
		m.reload()
		if m.Calendar.Anchor.Equal(previous) {
			m.Calendar.Anchor = m.today
			m.Calendar.Day = weekdayIndex(m.today)
		}
		if m.Plan.Proposal != nil {
			m.Plan.Proposal = nil
			m.Plan.Editing = true
		}
		m.scheduleRollover()
		m.logger.WithField("date", m.today.String()).Info("day rolled over")
		m.ok("new day: %s", m.today)
	case scheduler.KindSlotStart:
		title := ev.TaskID
		if t, found := m.taskByID(ev.TaskID); found {
			title = t.Title
		}
		m.ok("starting now: %s", title)
	}
	return m
}

func (m Model) renderEventLog() string {
	if len(m.EventLog) == 0 {
		return ""
	}
	lines := []string{"events:"}
	start := len(m.EventLog) - 3
	if start < 0 {
		start = 0
	}
	for _, ev := range m.EventLog[start:] {
		lines = append(lines, fmt.Sprintf("- %s %s %s", ev.At.Format("15:04"), ev.Kind, ev.TaskID))
	}
	return strings.Join(lines, "\n")
}
