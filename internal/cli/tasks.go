package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tempo/internal/commands"
	"github.com/sandeepkv93/tempo/internal/planner"
)

// paletteSpec exposes one command palette verb as a subcommand.
type paletteSpec struct {
	name  string
	use   string
	short string
	args  cobra.PositionalArgs
}

var paletteCommands = []paletteSpec{
	{name: "add", use: "add <title> [date]", short: "Add a task; a date phrase in the title becomes its due date", args: cobra.MinimumNArgs(1)},
	{name: "schedule", use: "schedule <id> <date> <time>", short: "Drop a task onto a calendar slot", args: cobra.MinimumNArgs(3)},
	{name: "resize", use: "resize <id> <minutes>", short: "Change the length of a scheduled task", args: cobra.ExactArgs(2)},
	{name: "unschedule", use: "unschedule <id>", short: "Remove a task from the calendar", args: cobra.ExactArgs(1)},
	{name: "due", use: "due <id> <date|none>", short: "Set or clear the due date", args: cobra.MinimumNArgs(2)},
	{name: "start", use: "start <id> <date|none>", short: "Set or clear the start date", args: cobra.MinimumNArgs(2)},
	{name: "done", use: "done <id>", short: "Mark a task done", args: cobra.ExactArgs(1)},
	{name: "focus", use: "focus <id>", short: "Add a task to My Day", args: cobra.ExactArgs(1)},
	{name: "dismiss", use: "dismiss <id>", short: "Dismiss a task from My Day", args: cobra.ExactArgs(1)},
}

func newPaletteCmd(flags *rootFlags, pc paletteSpec) *cobra.Command {
	return &cobra.Command{
		Use:   pc.use,
		Short: pc.short,
		Args:  pc.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, flags, pc.name+" "+strings.Join(args, " "))
		},
	}
}

// runPalette parses line exactly as the TUI command palette does and runs it
// against the store.
func runPalette(cmd *cobra.Command, flags *rootFlags, line string) error {
	a, err := openApp(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	parsed, err := commands.Parse(line, a.cfg.ParseOptions(a.svc.Today()))
	if err != nil {
		return err
	}
	res, err := commands.Execute(parsed, a.svc.Handlers(cmd.Context()))
	if err != nil {
		a.logger.WithError(err).WithField("command", parsed.Type).Debug("command failed")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func newMyDayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "myday",
		Short: "Show today's focus list and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := a.svc.MyDay(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "My Day %s\n", a.svc.Today())
			if len(items) == 0 {
				fmt.Fprintln(out, "  nothing planned")
				return nil
			}
			for _, item := range items {
				marker := " "
				if item.InFocus {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s %-40s %s\n", marker, shortID(item.Task.ID), item.Task.Title, item.Reason)
			}
			return nil
		},
	}
}

func newPlanCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Propose tasks for today that fit a time budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, _ := cmd.Flags().GetInt("budget")
			accept, _ := cmd.Flags().GetBool("accept")

			a, err := openApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if budget == 0 {
				budget = a.cfg.Plan.BudgetMinutes
			}
			proposal, err := a.svc.PlanMyDay(cmd.Context(), budget)
			if err != nil {
				return err
			}
			printProposal(cmd, proposal)
			if !accept {
				return nil
			}
			n, err := a.svc.AcceptPlan(cmd.Context(), proposal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accepted %d tasks into My Day\n", n)
			return nil
		},
	}
	cmd.Flags().Int("budget", 0, "Minutes available today (defaults to plan.budget_minutes)")
	cmd.Flags().Bool("accept", false, "Write the proposal to My Day")
	return cmd
}

func printProposal(cmd *cobra.Command, p *planner.Proposal) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "budget %dm, planned %dm, left %dm\n", p.Budget, p.TotalMinutes(), p.Remaining())
	for i, t := range p.Tasks() {
		fmt.Fprintf(out, "%2d. %-8s %4dm  %s\n", i+1, shortID(t.ID), t.Minutes(), t.Title)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
