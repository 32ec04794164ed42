package prepcmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/dates"
	"roster/src/internal/names"
	"roster/src/internal/prompt"
	"roster/src/internal/roster"
	"roster/src/internal/stringsx"
	"roster/src/internal/table"
)

type options struct {
	date, inCSV, outCSV, convention string
	check                           bool
}

// New returns the prep-roster command that normalizes one department export.
func New(deps *cmdutil.Deps) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "prep-roster",
		Short:        "Normalize a roster export: rename columns, split names, tag the roster date",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return run(cmd, deps, o) },
	}
	cmd.Flags().StringVarP(&o.date, "date", "d", "", "the date of the roster in the format YYYY-MM-DD")
	cmd.Flags().StringVarP(&o.inCSV, "in-csv", "i", "", "path to the source file (.csv or .xlsx)")
	cmd.Flags().StringVarP(&o.outCSV, "out-csv", "o", "", "path to save the resulting CSV in")
	cmd.Flags().StringVar(&o.convention, "convention", "", "full name layout: comma (\"Last, First Middle Suffix\") or space (\"Last First Middle\")")
	cmd.Flags().BoolVar(&o.check, "check", false, "print rows whose rejoined name differs from full_name, then a count")
	return cmd
}

func run(cmd *cobra.Command, deps *cmdutil.Deps, o options) error {
	if err := resolve(deps.Prompt(cmd), &o); err != nil {
		return err
	}
	if err := dates.ValidateISO(o.date); err != nil {
		return err
	}
	cfg := deps.Cfg()
	conv, err := names.ParseConvention(stringsx.FirstNonEmpty(o.convention, cfg.Convention))
	if err != nil {
		return err
	}
	t, err := roster.PrepFile(o.inCSV, o.outCSV, roster.PrepOptions{
		Date:       o.date,
		Renames:    cfg.Renames,
		Convention: conv,
		Logger:     deps.Log(),
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", o.outCSV, t.Len()); err != nil {
		return err
	}
	if o.check {
		return reportCheck(cmd, t, conv)
	}
	return nil
}

// resolve asks for every required option not given as a flag.
func resolve(p prompt.Provider, o *options) error {
	var err error
	if o.date, err = prompt.Require(p, "Date", o.date); err != nil {
		return err
	}
	if o.inCSV, err = prompt.Require(p, "In csv", o.inCSV); err != nil {
		return err
	}
	o.outCSV, err = prompt.Require(p, "Out csv", o.outCSV)
	return err
}

func reportCheck(cmd *cobra.Command, t *table.Table, conv names.Convention) error {
	pairs, err := roster.CheckNames(t, conv)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	bad := 0
	for _, p := range pairs {
		if slices.Equal(strings.Fields(p[0]), strings.Fields(p[1])) {
			continue
		}
		bad++
		if _, err := fmt.Fprintf(out, "  %q -> %q\n", p[0], p[1]); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "name check: %d of %d names differ after rejoining\n", bad, len(pairs))
	return err
}
