package main

import (
	"github.com/spf13/cobra"

	"roster/src/cmd/roster/prepcmd"
)

// newPrepCmd creates the "prep-roster" command that normalizes one export.
func newPrepCmd() *cobra.Command { return prepcmd.New(deps) }
