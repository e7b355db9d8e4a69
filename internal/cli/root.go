package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dbPath     string
	today      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "tempo",
		Short: "tempo - plan your day, schedule your week",
		Long: `tempo keeps a task list and reasons about time for you.

It parses natural-language dates, tracks what is due, blocked or ready, proposes a
day plan within a time budget and lays scheduled tasks out on a weekly calendar.
Run without a subcommand to open the terminal UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a tempo.yaml config file")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Path to the task database (overrides db_path)")
	root.PersistentFlags().StringVar(&flags.today, "today", "", "Pretend today is this YYYY-MM-DD date")

	root.AddCommand(newParseCmd(flags))
	root.AddCommand(newRecurCmd(flags))
	root.AddCommand(newMyDayCmd(flags))
	root.AddCommand(newPlanCmd(flags))
	for _, pc := range paletteCommands {
		root.AddCommand(newPaletteCmd(flags, pc))
	}
	return root
}

// Execute runs the root command
func Execute(version string) error {
	root := newRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
