package main

import (
	"github.com/spf13/cobra"

	"roster/src/cmd/roster/lookupcmd"
)

// newLookupCmd creates the "lookup-officer" command that queries the seeded store.
func newLookupCmd() *cobra.Command { return lookupcmd.New(deps) }
