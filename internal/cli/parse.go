package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
)

// parseOptions resolves date parsing settings without opening the store.
func parseOptions(flags *rootFlags) (parse.Options, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return parse.Options{}, err
	}
	clock, err := clockFor(flags)
	if err != nil {
		return parse.Options{}, err
	}
	return cfg.ParseOptions(model.DateOf(clock.Now())), nil
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Try the natural-language date and time parsers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "date <text>",
		Short: "Extract a date from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptions(flags)
			if err != nil {
				return err
			}
			res := parse.ParseDate(strings.Join(args, " "), opts)
			out := cmd.OutOrStdout()
			if res.Date == nil {
				fmt.Fprintln(out, "no date found")
				return nil
			}
			fmt.Fprintf(out, "date: %s\n", res.Date)
			fmt.Fprintf(out, "matched: %q\n", res.Matched)
			fmt.Fprintf(out, "text: %q\n", res.CleanedText)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "time <text>",
		Short: "Normalise a clock time to HH:MM",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := parse.ParseTime(strings.Join(args, " "))
			if clock == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no time found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), clock)
			return nil
		},
	})
	return cmd
}
