package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tempo/internal/scheduler"
	"github.com/sandeepkv93/tempo/internal/update"
)

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	// Log lines would corrupt the screen; only log_file receives them.
	a, err := openApp(flags, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := scheduler.NewEngine(a.cfg.Events.Buffer)
	engine.Start()
	defer engine.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := update.NewModel(ctx, a.svc, engine, a.logger, update.Config{
		BudgetMinutes: a.cfg.Plan.BudgetMinutes,
		PixelsPerSlot: a.cfg.Calendar.PixelsPerSlot,
		ParseOptions:  a.cfg.ParseOptions,
	})
	a.logger.Info("tui started")
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.logger.WithError(err).Error("tui exited with error")
		return err
	}
	return nil
}
