package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
	// Wide gives the left pane the full width when the right pane is empty.
	Wide bool
}

const paneWidth = 58

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	soonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	dropStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func RenderApp(data AppData) string {
	var row string
	if data.Wide && strings.TrimSpace(data.RightPane) == "" {
		row = panelStyle.Width(2*paneWidth + 4).Render(data.LeftPane)
	} else {
		left := panelStyle.Width(paneWidth).Render(data.LeftPane)
		right := panelStyle.Width(paneWidth).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
