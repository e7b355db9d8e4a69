package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/calendar"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	if m.Calendar.Resize != nil {
		return m.handleResizeKey(msg)
	}

	switch msg.String() {
	case "h", "left":
		if m.Calendar.Day > 0 {
			m.Calendar.Day--
		} else {
			m.Calendar.Anchor = m.Calendar.Anchor.AddDays(-7)
			m.Calendar.Day = 6
		}
	case "l", "right":
		if m.Calendar.Day < 6 {
			m.Calendar.Day++
		} else {
			m.Calendar.Anchor = m.Calendar.Anchor.AddDays(7)
			m.Calendar.Day = 0
		}
	case "k", "up":
		if m.Calendar.Slot > 0 {
			m.Calendar.Slot--
		}
	case "j", "down":
		if m.Calendar.Slot < calendar.SlotsPerDay-1 {
			m.Calendar.Slot++
		}
	case "[":
		m.Calendar.Anchor = m.Calendar.Anchor.AddDays(-7)
	case "]":
		m.Calendar.Anchor = m.Calendar.Anchor.AddDays(7)
	case "t":
		m.Calendar.Anchor = m.today
		m.Calendar.Day = weekdayIndex(m.today)
	case "enter":
		if m.Calendar.Drag != nil {
			m = m.drop()
		} else if p, ok := m.placementAtCursor(); ok {
			m.Calendar.Drag = &DragState{TaskID: p.Task.ID, Title: p.Task.Title}
			m.ok("moving %s: pick a slot and press enter", p.Task.Title)
		}
	case "esc":
		if m.Calendar.Drag != nil {
			m.Calendar.Drag = nil
			m.ok("move cancelled")
		}
	case "+", "=", "-":
		m = m.beginResize(msg.String())
	case "u":
		if p, ok := m.placementAtCursor(); ok {
			if _, err := m.svc.Unschedule(m.ctx, p.Task.ID); err != nil {
				m.fail(err)
				return m
			}
			m.reload()
			m.ok("unscheduled: %s", p.Task.Title)
		}
	case "d":
		if p, ok := m.placementAtCursor(); ok {
			m = m.complete(p.Task.ID, p.Task.Title)
		}
	}
	m.keepSlotVisible()
	if p, ok := m.placementAtCursor(); ok {
		m.SelectedTaskID = p.Task.ID
	}
	return m
}

// PickUp starts a keyboard drag of task id, which may not be scheduled yet.
func (m Model) PickUp(id string) Model {
	t, ok := m.taskByID(id)
	if !ok {
		return m
	}
	m.Calendar.Drag = &DragState{TaskID: t.ID, Title: t.Title}
	m.CurrentView = ViewCalendar
	m.ok("moving %s: pick a slot and press enter", t.Title)
	return m
}

func (m Model) drop() Model {
	drag := m.Calendar.Drag
	m.Calendar.Drag = nil
	updated, err := m.svc.Schedule(m.ctx, drag.TaskID, m.cursorDate(), m.Calendar.Slot)
	if err != nil {
		m.fail(err)
		return m
	}
	m.reload()
	m.ok("scheduled %s on %s %s-%s", updated.Title, m.cursorDate(), updated.StartTime, updated.EndTime)
	if clash := calendar.ConflictsWith(updated, m.tasks); len(clash) > 0 {
		m.Status.Text += fmt.Sprintf(" (overlaps %s)", clash[0].Title)
	}
	return m
}

func (m Model) beginResize(key string) Model {
	p, ok := m.placementAtCursor()
	if !ok {
		m.Status = StatusBar{Text: "no scheduled task under the cursor", IsError: true}
		return m
	}
	session, err := calendar.BeginResize(p.Task, m.cfg.PixelsPerSlot)
	if err != nil {
		m.fail(err)
		return m
	}
	m.Calendar.Resize = session
	m.Calendar.resizeRows = 0
	return m.handleResizeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// handleResizeKey moves the bottom edge one terminal row per key press.
func (m Model) handleResizeKey(msg tea.KeyMsg) Model {
	session := m.Calendar.Resize
	switch msg.String() {
	case "+", "=", "j", "down":
		m.Calendar.resizeRows++
	case "-", "k", "up":
		m.Calendar.resizeRows--
	case "enter":
		m.Calendar.Resize = nil
		updated, err := m.svc.CommitResize(m.ctx, session)
		if err != nil {
			m.fail(err)
			return m
		}
		m.reload()
		m.ok("resized %s to %s-%s", updated.Title, updated.StartTime, updated.EndTime)
		return m
	case "esc":
		session.Cancel()
		m.Calendar.Resize = nil
		m.ok("resize cancelled")
		return m
	default:
		return m
	}
	minutes := session.Move(m.Calendar.resizeRows)
	m.ok("resize %s: until %s (%dm), enter to save", session.Task().Title, session.PreviewEnd(), minutes)
	return m
}

func (m *Model) keepSlotVisible() {
	visible := m.cfg.VisibleSlots
	if m.Calendar.Slot < m.Calendar.Top {
		m.Calendar.Top = m.Calendar.Slot
	}
	if m.Calendar.Slot >= m.Calendar.Top+visible {
		m.Calendar.Top = m.Calendar.Slot - visible + 1
	}
	if m.Calendar.Top > calendar.SlotsPerDay-visible {
		m.Calendar.Top = calendar.SlotsPerDay - visible
	}
	if m.Calendar.Top < 0 {
		m.Calendar.Top = 0
	}
}

func (m Model) week() [7]model.Date {
	return calendar.Week(m.Calendar.Anchor)
}

func (m Model) cursorDate() model.Date {
	return m.week()[m.Calendar.Day]
}

func (m Model) placementAtCursor() (calendar.Placement, bool) {
	for _, p := range calendar.DayLayout(m.tasks, m.cursorDate()) {
		if p.Covers(m.Calendar.Slot) {
			return p, true
		}
	}
	return calendar.Placement{}, false
}

func (m Model) renderCalendarView() string {
	week := m.week()
	layouts := make([][]calendar.Placement, len(week))
	days := make([]string, len(week))
	conflicts := make([]string, 0)
	for i, d := range week {
		layouts[i] = calendar.DayLayout(m.tasks, d)
		days[i] = shortDay(d)
		if d.Equal(m.today) {
			days[i] += "*"
		}
		for _, c := range calendar.FindOverlaps(m.tasks, d) {
			conflicts = append(conflicts, fmt.Sprintf("%s: %s / %s", shortDay(d), c.A.Title, c.B.Title))
		}
	}

	var resizing *calendar.ResizeSession
	resizeFirst, resizeLast := -1, -1
	if s := m.Calendar.Resize; s != nil {
		resizing = s
		start, _, _ := calendar.Interval(s.Task())
		end, _ := model.ParseClock(s.PreviewEnd())
		resizeFirst, resizeLast = calendar.SlotOf(start), calendar.SlotOf(end-1)
	}

	rows := make([]views.CalendarRowData, 0, m.cfg.VisibleSlots)
	for slot := m.Calendar.Top; slot < m.Calendar.Top+m.cfg.VisibleSlots && slot < calendar.SlotsPerDay; slot++ {
		row := views.CalendarRowData{Time: model.FormatClock(calendar.SlotStart(slot)), Cells: make([]views.CalendarCellData, len(week))}
		for day := range week {
			cell := views.CalendarCellData{Cursor: day == m.Calendar.Day && slot == m.Calendar.Slot}
			for _, p := range layouts[day] {
				if !p.Covers(slot) {
					continue
				}
				if slot == p.FirstSlot {
					cell.Label = p.Task.Title
				} else {
					cell.Label = "|"
				}
				cell.Overlap = p.Overlaps
				break
			}
			if resizing != nil && day == m.Calendar.Day && slot >= resizeFirst && slot <= resizeLast {
				cell.Resizing = true
				if cell.Label == "" {
					cell.Label = "|"
				}
			}
			if m.Calendar.Drag != nil && cell.Cursor {
				cell.Drop = true
			}
			row.Cells[day] = cell
		}
		rows = append(rows, row)
	}

	mode := "browse"
	switch {
	case m.Calendar.Drag != nil:
		mode = "moving: " + m.Calendar.Drag.Title
	case resizing != nil:
		mode = fmt.Sprintf("resizing: %s until %s", resizing.Task().Title, resizing.PreviewEnd())
	}
	selected := ""
	if p, ok := m.placementAtCursor(); ok {
		selected = fmt.Sprintf("%s %s-%s", p.Task.Title, model.FormatClock(p.Start), model.FormatClock(p.End))
	}

	return views.RenderCalendarPanel(views.CalendarPanelData{
		Week:      fmt.Sprintf("%s .. %s", week[0], week[6]),
		Mode:      mode,
		Days:      days,
		Rows:      rows,
		Conflicts: conflicts,
		Selected:  selected,
	})
}
