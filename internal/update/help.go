package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/tempo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := m.keyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global},
		}) + "\n" + views.RenderMarkdown(m.paletteMarkdown()),
	})
}

func (m Model) paletteMarkdown() string {
	var b strings.Builder
	b.WriteString("### Command palette\n\n")
	for _, line := range strings.Split(strings.TrimPrefix(m.paletteHint(), "commands: "), ", ") {
		b.WriteString("- `" + line + "`\n")
	}
	b.WriteString("\nDates accept `today`, `tomorrow`, weekdays, `in 3 days`, `next week` and numeric dates.\n")
	return b.String()
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.MyDay, Action: "my day"},
		{Key: m.Keys.Plan, Action: "plan"},
		{Key: m.Keys.Calendar, Action: "calendar"},
		{Key: m.Keys.Backlog, Action: "backlog"},
		{Key: "/", Action: "command"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewMyDay:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "s", Action: "start task"},
			{Key: "d", Action: "mark done"},
			{Key: "f", Action: "pin to my day"},
			{Key: "x", Action: "dismiss for today"},
			{Key: "p", Action: "plan my day"},
		}
	case ViewPlan:
		return []KeyBinding{
			{Key: "enter", Action: "propose for budget / accept"},
			{Key: "j/k", Action: "move selection"},
			{Key: "K/J", Action: "promote / demote"},
			{Key: "x", Action: "remove from proposal"},
			{Key: "b", Action: "change budget"},
			{Key: "esc", Action: "discard"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "previous/next slot"},
			{Key: "[/]", Action: "previous/next week"},
			{Key: "t", Action: "this week"},
			{Key: "enter", Action: "pick up / drop task"},
			{Key: "+/-", Action: "resize, enter saves"},
			{Key: "u", Action: "unschedule"},
			{Key: "esc", Action: "cancel move or resize"},
		}
	case ViewBacklog:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "f", Action: "add to my day"},
			{Key: "c", Action: "move to calendar"},
			{Key: "d", Action: "mark done"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) keyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
