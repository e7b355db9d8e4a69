package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/views"
)

func (m Model) handleMyDayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.MyDay.Cursor > 0 {
			m.MyDay.Cursor--
		}
	case "down", "j":
		if m.MyDay.Cursor < len(m.MyDay.Items)-1 {
			m.MyDay.Cursor++
		}
	case "d":
		if item, ok := m.currentFeedItem(); ok {
			m = m.complete(item.ID, item.Title)
		}
	case "s":
		if item, ok := m.currentFeedItem(); ok {
			if _, _, err := m.svc.SetStatus(m.ctx, item.ID, model.StatusInProgress); err != nil {
				m.fail(err)
				return m
			}
			m.reload()
			m.ok("started: %s", item.Title)
		}
	case "f":
		if item, ok := m.currentFeedItem(); ok {
			if _, err := m.svc.AddToMyDay(m.ctx, item.ID); err != nil {
				m.fail(err)
				return m
			}
			m.reload()
			m.ok("added to my day: %s", item.Title)
		}
	case "x":
		if item, ok := m.currentFeedItem(); ok {
			if _, err := m.svc.DismissFromMyDay(m.ctx, item.ID); err != nil {
				m.fail(err)
				return m
			}
			m.reload()
			m.ok("dismissed: %s", item.Title)
		}
	case "p":
		return m.switchView(ViewPlan)
	}
	if item, ok := m.currentFeedItem(); ok {
		m.SelectedTaskID = item.ID
	}
	return m
}

func (m Model) currentFeedItem() (model.Task, bool) {
	if len(m.MyDay.Items) == 0 {
		return model.Task{}, false
	}
	return m.MyDay.Items[clamp(m.MyDay.Cursor, len(m.MyDay.Items))].Task, true
}

// complete marks a task done and reports any occurrences the completion
// materialized.
func (m Model) complete(id, title string) Model {
	_, clones, err := m.svc.SetStatus(m.ctx, id, model.StatusDone)
	if err != nil {
		m.fail(err)
		return m
	}
	m.reload()
	if len(clones) > 0 {
		m.ok("completed: %s (%d new occurrences)", title, len(clones))
	} else {
		m.ok("completed: %s", title)
	}
	return m
}

func (m Model) renderMyDayView() string {
	items := make([]views.FeedItemData, 0, len(m.MyDay.Items))
	selected := ""
	for i, item := range m.MyDay.Items {
		if i == m.MyDay.Cursor {
			selected = item.Task.ID
		}
		when := ""
		if item.Task.StartTime != "" && item.Task.StartDate != nil && item.Task.StartDate.Equal(m.today) {
			when = item.Task.StartTime
		}
		items = append(items, views.FeedItemData{
			ID:      item.Task.ID,
			Title:   item.Task.Title,
			Urgency: string(item.Urgency),
			Reason:  string(item.Reason),
			When:    when,
			InFocus: item.InFocus,
			Blocked: item.Blocked,
		})
	}
	return views.RenderMyDayPanel(views.MyDayPanelData{
		Date:       m.today.String(),
		Items:      items,
		SelectedID: selected,
	})
}
