package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
)

func newRecurCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recur <daily|weekly|biweekly|monthly> <anchor date>",
		Short: "List the future occurrences of a cadence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cadence := model.Cadence(strings.ToLower(args[0]))
			if cadence == model.CadenceNone || !cadence.IsValid() {
				return fmt.Errorf("%w: %q", model.ErrInvalidCadence, args[0])
			}
			count, _ := cmd.Flags().GetInt("count")
			untilText, _ := cmd.Flags().GetString("until")

			opts, err := parseOptions(flags)
			if err != nil {
				return err
			}
			anchor, err := resolveDate(strings.Join(args[1:], " "), opts)
			if err != nil {
				return err
			}
			var until *model.Date
			if untilText != "" {
				d, err := resolveDate(untilText, opts)
				if err != nil {
					return err
				}
				until = &d
			}
			if count <= 0 {
				count = model.DefaultOccurrenceCount(cadence)
			}

			out := cmd.OutOrStdout()
			rule, err := cadence.RRule(anchor, count, until)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rule.String())
			for _, d := range model.FutureOccurrences(anchor, cadence, count, until) {
				fmt.Fprintf(out, "%s %s\n", d, d.Weekday().String()[:3])
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 0, "Number of occurrences (defaults per cadence)")
	cmd.Flags().String("until", "", "Stop after this date instead of a count")
	return cmd
}

// resolveDate accepts an ISO date or anything the natural-language parser
// understands.
func resolveDate(text string, opts parse.Options) (model.Date, error) {
	if d, err := model.ParseISODate(strings.TrimSpace(text)); err == nil {
		return d, nil
	}
	res := parse.ParseDate(text, opts)
	if res.Date == nil {
		return model.Date{}, fmt.Errorf("%w: %q", model.ErrInvalidDate, text)
	}
	return *res.Date, nil
}
