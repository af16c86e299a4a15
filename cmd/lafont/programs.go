package main

import (
	"fmt"

	"lafont/pkg/core"

	"github.com/spf13/cobra"
)

func newProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the built-in nets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range core.Names() {
				p, _ := core.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", p.Name, p.Description)
			}
		},
	}
}
