// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/manabase/internal/core/decklist"
)

// parseOutput is the JSON printed by the parse command.
type parseOutput struct {
	decklist.List
	MainDeckCount  int      `json:"main_deck_count"`
	SideboardCount int      `json:"sideboard_count"`
	UniqueNames    []string `json:"unique_names"`
}

func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a deck list without contacting any service",
		Long:  "Parse a deck list and print its main deck and sideboard as JSON. Unrecognised lines are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			list := decklist.Parse(text)
			names := list.Names()
			if names == nil {
				names = []string{}
			}

			return printJSON(cmd, parseOutput{
				List:           list,
				MainDeckCount:  list.MainCount(),
				SideboardCount: list.SideboardCount(),
				UniqueNames:    names,
			})
		},
	}

	return cmd
}
