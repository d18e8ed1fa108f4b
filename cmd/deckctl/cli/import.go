// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/manabase/internal/core/deck"
	"github.com/taibuivan/manabase/pkg/pointer"
)

func NewImportCommand() *cobra.Command {
	var name, description, format, tags string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a deck list into the catalog",
		Long:  "Resolve every card of a deck list against the catalog and Scryfall, then store it as a new deck.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			request := deck.ImportRequest{
				DeckText: text,
				Name:     name,
				Tags:     deck.ParseTags(tags),
			}
			if cmd.Flags().Changed("description") {
				request.Description = pointer.To(description)
			}
			if cmd.Flags().Changed("format") {
				request.Format = pointer.To(format)
			}

			result, err := rt.decks.Import(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Deck name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Deck description")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Format label, e.g. standard")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma separated tags")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
