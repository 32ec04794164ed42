package lookupcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/schema"
	"roster/src/internal/store"
	"roster/src/internal/stringsx"
)

// New returns the lookup-officer command that reads the seeded SQLite store.
// Without --badge it prints the latest roster.
func New(deps *cmdutil.Deps) *cobra.Command {
	var badge, db string
	cmd := &cobra.Command{
		Use:   "lookup-officer",
		Short: "Print one officer's roster history, or the latest roster, from the SQLite store as CSV",
		Long: `Reads the database written by seed-roster. With --badge, prints every
roster row for that badge, oldest first. Without it, prints the officers on the
most recent roster, ordered by name.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stringsx.FirstNonEmpty(db, deps.Cfg().Database)
			s, err := store.Open(path)
			if err != nil {
				return err
			}
			defer s.Close()
			var recs []schema.Record
			if b := strings.TrimSpace(badge); b != "" {
				if recs, err = s.ByBadge(cmd.Context(), b); err != nil {
					return err
				}
				if len(recs) == 0 {
					return fmt.Errorf("no officer with badge %q in %s", b, path)
				}
			} else if recs, err = s.Current(cmd.Context()); err != nil {
				return err
			}
			deps.Log().Debug("officer lookup", zap.String("badge", badge), zap.Int("rows", len(recs)))
			return schema.Encode(recs).WriteCSV(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&badge, "badge", "b", "", "badge number to look up")
	cmd.Flags().StringVar(&db, "db", "", "path to the SQLite database (default from config)")
	return cmd
}
