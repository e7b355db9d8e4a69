package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tempo/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// executePaletteCommand runs one command against the service. Plan opens the
// proposal for review instead of accepting it.
func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw, m.cfg.ParseOptions(m.today))
	if err != nil {
		m.fail(err)
		return m
	}

	handlers := m.svc.Handlers(m.ctx)
	var planned *Model
	handlers.Plan = func(args commands.PlanArgs) (commands.Result, error) {
		next := m.propose(args.Minutes)
		planned = &next
		return commands.Result{Message: next.Status.Text}, next.LastError
	}

	res, err := commands.Execute(cmd, handlers)
	if planned != nil {
		m = *planned
	}
	if err != nil {
		m.fail(err)
		return m
	}
	m.reload()
	m.logger.WithField("command", string(cmd.Type)).Debug("palette command executed")
	m.ok("%s", res.Message)
	return m
}

func (m Model) paletteHint() string {
	return fmt.Sprintf("commands: %s", strings.Join([]string{
		"add <title> [date]", "plan <minutes>", "schedule <id> <date> <time>", "resize <id> <minutes>",
		"unschedule <id>", "due|start <id> <date|none>", "done <id>", "focus <id>", "dismiss <id>",
	}, ", "))
}
