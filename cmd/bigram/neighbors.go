package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNeighborsCmd(g *globalFlags) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "neighbors <token>",
		Short: "List the tokens that co-occur most with a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			engine, err := g.openEngine(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			neighbors, err := engine.Store().TopNeighbors(ctx, strings.ToLower(args[0]), k)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), neighbors)
		},
	}

	cmd.Flags().IntVarP(&k, "top", "k", 10, "number of neighbors")
	return cmd
}
