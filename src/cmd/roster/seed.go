package main

import (
	"github.com/spf13/cobra"

	"roster/src/cmd/roster/seedcmd"
)

// newSeedCmd creates the "seed-roster" command that loads the historical CSV into SQLite.
func newSeedCmd() *cobra.Command { return seedcmd.New(deps) }
