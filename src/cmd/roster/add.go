package main

import (
	"github.com/spf13/cobra"

	"roster/src/cmd/roster/addcmd"
)

// newAddCmd creates the "add-to-roster" command that extends the historical CSV.
func newAddCmd() *cobra.Command { return addcmd.New(deps) }
