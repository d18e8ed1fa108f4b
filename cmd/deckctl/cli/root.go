// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// VersionInfo is stamped into the binary at build time.
type VersionInfo struct {
	Version string
	Commit  string
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "deckctl",
		Short:         "Manabase deck list tool",
		Long:          "Parse, import and inspect Magic: The Gathering deck lists against the Manabase catalog.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var reader io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open deck list: %w", err)
		}
		defer file.Close()
		reader = file
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read deck list: %w", err)
	}
	return string(data), nil
}

// printJSON writes value as indented JSON to the command output.
func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
