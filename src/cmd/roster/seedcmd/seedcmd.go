package seedcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/prompt"
	"roster/src/internal/schema"
	"roster/src/internal/store"
	"roster/src/internal/stringsx"
	"roster/src/internal/table"
)

// New returns the seed-roster command that loads the historical CSV into SQLite.
func New(deps *cmdutil.Deps) *cobra.Command {
	var historical, db string
	cmd := &cobra.Command{
		Use:          "seed-roster",
		Short:        "Replace the officers table of a SQLite database with the historical roster",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Cfg()
			hist, err := prompt.WithDefault(deps.Prompt(cmd), "Historical csv", historical, cfg.HistoricalCSV)
			if err != nil {
				return err
			}
			t, err := table.Load(hist)
			if err != nil {
				return err
			}
			recs, err := schema.Decode(t)
			if err != nil {
				return fmt.Errorf("%s: %w", hist, err)
			}
			s, err := store.Open(stringsx.FirstNonEmpty(db, cfg.Database))
			if err != nil {
				return err
			}
			defer s.Close()
			n, err := s.Replace(cmd.Context(), recs)
			if err != nil {
				return err
			}
			md, err := s.Metadata(cmd.Context())
			if err != nil {
				return err
			}
			deps.Log().Info("seeded officers", zap.Int("rows", n), zap.String("latest", md.Latest))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d officers (latest roster %s)\n", md.Rows, md.Latest)
			return err
		},
	}
	cmd.Flags().StringVarP(&historical, "historical-csv", "H", "", "path to the historical CSV")
	cmd.Flags().StringVar(&db, "db", "", "path to the SQLite database (default from config)")
	return cmd
}
