package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roster/src/cmd/roster/cmdutil"
	"roster/src/internal/config"
	"roster/src/internal/logging"
	"roster/src/internal/stringsx"
)

var (
	configPath string
	verbose    bool
	deps       = &cmdutil.Deps{}
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Police roster CLI (normalize exports, maintain the historical roster)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(stringsx.FirstNonEmpty(configPath, os.Getenv(config.EnvPath)))
			if err != nil {
				return err
			}
			deps.Config = cfg
			if deps.Logger == nil {
				if deps.Logger, err = logging.New(verbose); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps.Logger != nil {
				_ = deps.Logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or TOML config file (or set "+config.EnvPath+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(newPrepCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newLookupCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
