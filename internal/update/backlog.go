package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/views"
)

func (m Model) handleBacklogKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Backlog.Cursor > 0 {
			m.Backlog.Cursor--
		}
	case "down", "j":
		if m.Backlog.Cursor < len(m.Backlog.Items)-1 {
			m.Backlog.Cursor++
		}
	case "f":
		if item, ok := m.currentBacklogItem(); ok {
			if _, err := m.svc.AddToMyDay(m.ctx, item.Task.ID); err != nil {
				m.fail(err)
				return m
			}
			m.reload()
			m.ok("added to my day: %s", item.Task.Title)
		}
	case "c":
		if item, ok := m.currentBacklogItem(); ok {
			return m.PickUp(item.Task.ID)
		}
	case "d":
		if item, ok := m.currentBacklogItem(); ok {
			m = m.complete(item.Task.ID, item.Task.Title)
		}
	}
	m.backlogTable.SetCursor(m.Backlog.Cursor)
	if item, ok := m.currentBacklogItem(); ok {
		m.SelectedTaskID = item.Task.ID
	}
	return m
}

func (m Model) currentBacklogItem() (BacklogItem, bool) {
	if len(m.Backlog.Items) == 0 {
		return BacklogItem{}, false
	}
	return m.Backlog.Items[clamp(m.Backlog.Cursor, len(m.Backlog.Items))], true
}

func (m Model) renderBacklogView() string {
	data := views.BacklogPanelData{TableView: m.backlogTable.View()}
	if item, ok := m.currentBacklogItem(); ok {
		blockers := make([]string, 0, len(item.Blockers))
		for _, id := range item.Blockers {
			if t, found := m.taskByID(id); found {
				blockers = append(blockers, t.Title)
			} else {
				blockers = append(blockers, id)
			}
		}
		data.Selected = &views.BacklogItemData{
			ID:       item.Task.ID,
			Title:    item.Task.Title,
			Ready:    item.Ready,
			Blockers: blockers,
			Score:    item.Score,
		}
	}
	return views.RenderBacklogPanel(data)
}
