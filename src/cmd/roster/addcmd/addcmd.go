package addcmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/gitutil"
	"roster/src/internal/prompt"
	"roster/src/internal/roster"
)

const msgCommit = "roster: add %s"

type options struct {
	historical   string
	dir, match   string
	commit, push bool
}

// New returns the add-to-roster command that appends prepared rosters to the
// historical CSV.
func New(deps *cmdutil.Deps) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "add-to-roster [csv...]",
		Short: "Append prepared roster files to the historical CSV (rewritten in place)",
		Long: `Appends each prepared roster to the historical CSV, keeping only the
historical column set. Nothing is written unless every input loads and carries
the required columns.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return run(cmd, deps, o, args) },
	}
	cmd.Flags().StringVarP(&o.historical, "historical-csv", "H", "", "path to the historical CSV; this file will be replaced with the updated version")
	cmd.Flags().StringVar(&o.dir, "dir", "", "also add every roster in this directory matching --match")
	cmd.Flags().StringVar(&o.match, "match", roster.DefaultMatch, "file name glob used with --dir")
	cmd.Flags().BoolVar(&o.commit, "commit", false, "commit the rewritten historical CSV with git")
	cmd.Flags().BoolVar(&o.push, "push", false, "push after committing (implies --commit)")
	return cmd
}

func run(cmd *cobra.Command, deps *cmdutil.Deps, o options, args []string) error {
	cfg := deps.Cfg()
	hist, err := prompt.WithDefault(deps.Prompt(cmd), "Historical csv", o.historical, cfg.HistoricalCSV)
	if err != nil {
		return err
	}
	inputs, err := gatherInputs(o, args)
	if err != nil {
		return err
	}
	sum, err := roster.AddToHistorical(hist, inputs, roster.AddOptions{Columns: cfg.Columns, Logger: deps.Log()})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, a := range sum.Added {
		if _, err := fmt.Fprintf(out, "added %d rows from %s\n", a.Rows, a.Path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "wrote %s (latest roster %s)\n", hist, sum.Latest); err != nil {
		return err
	}
	if !o.commit && !o.push {
		return nil
	}
	return commitHistorical(cmd, deps.Commit(o.push), hist, inputs)
}

// gatherInputs returns the positional paths in order, repeats included,
// followed by --dir matches that were not already given.
func gatherInputs(o options, args []string) ([]string, error) {
	var inputs []string
	given := map[string]bool{}
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			inputs = append(inputs, a)
			given[filepath.Clean(a)] = true
		}
	}
	if strings.TrimSpace(o.dir) != "" {
		found, err := roster.Discover(o.dir, o.match)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !given[filepath.Clean(f)] {
				inputs = append(inputs, f)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no roster files given (pass paths or --dir)")
	}
	return inputs, nil
}

func commitHistorical(cmd *cobra.Command, c cmdutil.Committer, hist string, inputs []string) error {
	bases := make([]string, len(inputs))
	for i, in := range inputs {
		bases[i] = filepath.Base(in)
	}
	err := c.Commit([]string{hist}, fmt.Sprintf(msgCommit, strings.Join(bases, ", ")))
	if errors.Is(err, gitutil.ErrNotRepo) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: skipping git commit (not a git repository)")
		return nil
	}
	return err
}
