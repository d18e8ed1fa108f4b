// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import "github.com/spf13/cobra"

func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <deck-id>",
		Short: "Print the statistics of a stored deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			stats, err := rt.decks.Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}

	return cmd
}
