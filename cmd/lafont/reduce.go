package main

import (
	"fmt"
	"time"

	"lafont/internal/config"
	"lafont/internal/engine"
	"lafont/pkg/inet"

	"github.com/spf13/cobra"
)

func newReduceCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Reduce a program to normal form and print rewrite counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			build, err := builder(cfg)
			if err != nil {
				return err
			}
			n, err := build()
			if err != nil {
				return err
			}
			e, err := newEngine(cfg, engine.Hooks{
				OnRewrite: func(rw inet.Rewrite) {
					logger.Debug("rewrite", "rule", rw.Rule, "a", rw.A, "b", rw.B, "created", len(rw.Created))
				},
			})
			if err != nil {
				return err
			}

			start := time.Now()
			initial := n.Len()
			steps, err := e.Reduce(cmd.Context(), n, limit)
			if err != nil {
				return err
			}
			st := e.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "program:       %s\n", cfg.Program)
			fmt.Fprintf(out, "strategy:      %s\n", e.Strategy())
			fmt.Fprintf(out, "agents:        %d -> %d\n", initial, n.Len())
			fmt.Fprintf(out, "steps:         %d\n", steps)
			fmt.Fprintf(out, "annihilations: %d\n", st.Annihilations)
			fmt.Fprintf(out, "duplications:  %d\n", st.Duplications)
			fmt.Fprintf(out, "normal form:   %s\n", n.Signature())
			logger.Debug("reduced", "elapsed", time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 1_000_000, "give up after this many steps, 0 for no limit")
	return cmd
}
