package views

import (
	"fmt"
	"strings"
)

type FeedItemData struct {
	ID      string
	Title   string
	Urgency string
	Reason  string
	When    string
	InFocus bool
	Blocked bool
}

type MyDayPanelData struct {
	Date       string
	Items      []FeedItemData
	SelectedID string
}

type PlanItemData struct {
	ID      string
	Title   string
	Minutes int
	Score   int
}

type PlanPanelData struct {
	BudgetView string
	Editing    bool
	Items      []PlanItemData
	Cursor     int
	Budget     int
	Total      int
}

type CalendarCellData struct {
	Label    string
	Cursor   bool
	Drop     bool
	Overlap  bool
	Resizing bool
}

type CalendarRowData struct {
	Time  string
	Cells []CalendarCellData
}

type CalendarPanelData struct {
	Week      string
	Mode      string
	Days      []string
	Rows      []CalendarRowData
	Conflicts []string
	Selected  string
}

type BacklogItemData struct {
	ID       string
	Title    string
	Ready    bool
	Blockers []string
	Score    int
}

type BacklogPanelData struct {
	TableView string
	Selected  *BacklogItemData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderMyDayPanel(data MyDayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("my day: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [s]start [d]done [x]dismiss [p]plan\n")

	focus := make([]FeedItemData, 0)
	recommended := make([]FeedItemData, 0)
	for _, item := range data.Items {
		if item.InFocus {
			focus = append(focus, item)
		} else {
			recommended = append(recommended, item)
		}
	}
	renderFeedSection(&b, "Focus", focus, data.SelectedID)
	renderFeedSection(&b, "Recommended", recommended, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func renderFeedSection(b *strings.Builder, title string, items []FeedItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if item.ID == selectedID {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s %s", cursor, UrgencyBadge(item.Urgency), item.Title)
		if item.When != "" {
			line += " @" + item.When
		}
		if item.Blocked {
			line += " (blocked)"
		}
		if !item.InFocus && item.Reason != "" {
			line += " - " + item.Reason
		}
		b.WriteString(line + "\n")
	}
}

// UrgencyBadge renders the due-date bucket as a short colored tag.
func UrgencyBadge(urgency string) string {
	switch urgency {
	case "overdue":
		return overdueStyle.Render("[overdue]")
	case "today":
		return todayStyle.Render("[today]")
	case "soon":
		return soonStyle.Render("[soon]")
	default:
		return "[ ]"
	}
}

func RenderPlanPanel(data PlanPanelData) string {
	var b strings.Builder
	b.WriteString("plan my day:\n")
	if data.Editing {
		b.WriteString("budget: " + data.BudgetView + "\n")
		b.WriteString("actions: [enter]propose [esc]back\n")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("budget: %dm | planned: %dm | left: %dm\n", data.Budget, data.Total, data.Budget-data.Total))
	b.WriteString("actions: [j/k]move [K/J]promote/demote [x]remove [a]accept [b]budget\n")
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks fit the budget)")
		return b.String()
	}
	b.WriteString("\n")
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s [%dm, score %d]\n", cursor, i+1, item.Title, item.Minutes, item.Score))
	}
	return strings.TrimSpace(b.String())
}

const calendarCellWidth = 10

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("calendar: %s | %s\n", data.Week, data.Mode))
	b.WriteString("actions: [h/l]day [j/k]slot [[/]]week [enter]pick/drop [+/-]resize [u]unschedule [esc]cancel\n")

	b.WriteString(pad("", 6))
	for _, day := range data.Days {
		b.WriteString(pad(day, calendarCellWidth))
	}
	b.WriteString("\n")
	for _, row := range data.Rows {
		b.WriteString(pad(row.Time, 6))
		for _, cell := range row.Cells {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}

	if data.Selected != "" {
		b.WriteString("\nselected: " + data.Selected + "\n")
	}
	for _, c := range data.Conflicts {
		b.WriteString(warnStyle.Render("! overlap: "+c) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderCell(cell CalendarCellData) string {
	label := cell.Label
	switch {
	case cell.Drop:
		label = "[drop]"
	case label == "":
		label = "."
	}
	if cell.Overlap {
		label = "!" + label
	}
	if cell.Resizing {
		label = "~" + label
	}
	text := pad(truncate(label, calendarCellWidth-1), calendarCellWidth-1)
	switch {
	case cell.Cursor:
		text = cursorStyle.Render(text)
	case cell.Drop:
		text = dropStyle.Render(text)
	}
	return text + " "
}

func RenderBacklogPanel(data BacklogPanelData) string {
	var b strings.Builder
	b.WriteString("backlog:\n")
	b.WriteString("actions: [j/k]move [f]my day [c]to calendar [d]done\n")
	b.WriteString(data.TableView)
	if data.Selected != nil {
		b.WriteString("\n\ndetails:\n")
		b.WriteString(fmt.Sprintf("id: %s\n", data.Selected.ID))
		b.WriteString(fmt.Sprintf("score: %d\n", data.Selected.Score))
		switch {
		case len(data.Selected.Blockers) > 0:
			b.WriteString("blocked by: " + strings.Join(data.Selected.Blockers, ", "))
		case data.Selected.Ready:
			b.WriteString("ready to start")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
