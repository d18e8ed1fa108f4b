// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/manabase/cmd/deckctl/cli"
)

type parsed struct {
	Main []struct {
		Quantity int    `json:"quantity"`
		Name     string `json:"name"`
	} `json:"main"`
	Sideboard      []json.RawMessage `json:"sideboard"`
	MainDeckCount  int               `json:"main_deck_count"`
	SideboardCount int               `json:"sideboard_count"`
	UniqueNames    []string          `json:"unique_names"`
}

func runParse(t *testing.T, stdin string, args ...string) parsed {
	t.Helper()

	root := cli.NewRootCommand(cli.VersionInfo{Version: "test", Commit: "none"})
	root.AddCommand(cli.NewParseCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"parse"}, args...))
	require.NoError(t, root.Execute())

	var result parsed
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	return result
}

func TestParseCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	require.NoError(t, os.WriteFile(path, []byte("4 Island\n2 Opt\n\n1 Negate\n"), 0o600))

	result := runParse(t, "", path)

	require.Len(t, result.Main, 2)
	assert.Equal(t, "Island", result.Main[0].Name)
	assert.Len(t, result.Sideboard, 1)
	assert.Equal(t, 6, result.MainDeckCount)
	assert.Equal(t, 1, result.SideboardCount)
	assert.Equal(t, []string{"Island", "Opt", "Negate"}, result.UniqueNames)
}

func TestParseCommand_Stdin(t *testing.T) {
	result := runParse(t, "\n\n1 Foo", "-")

	require.Len(t, result.Main, 1)
	assert.Equal(t, "Foo", result.Main[0].Name)
	assert.Empty(t, result.Sideboard)
}

func TestParseCommand_EmptyInput(t *testing.T) {
	result := runParse(t, "", "-")

	assert.Empty(t, result.Main)
	assert.Empty(t, result.Sideboard)
	assert.Equal(t, []string{}, result.UniqueNames)
}

func TestParseCommand_MissingFile(t *testing.T) {
	root := cli.NewRootCommand(cli.VersionInfo{})
	root.AddCommand(cli.NewParseCommand())
	root.SetArgs([]string{"parse", filepath.Join(t.TempDir(), "absent.txt")})

	assert.Error(t, root.Execute())
}
