package main

import (
	"fmt"
	"os"

	"lafont/internal/config"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree around a fresh configuration.
func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var configPath string

	root := &cobra.Command{
		Use:   "lafont",
		Short: "Interaction combinator reducer and visualizer",
		Long: `lafont reduces nets of constructors, duplicators and erasers one active
pair at a time while a spring layout keeps every agent on screen.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return nil
			}
			return cfg.LoadFile(configPath, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	// Persistent flags (available to all commands)
	cfg.Bind(root.PersistentFlags())
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with settings; flags take precedence")

	root.AddCommand(newReduceCmd(cfg), newProgramsCmd())
	return root
}

// Execute builds the root command and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
