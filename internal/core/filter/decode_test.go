// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/manabase/internal/core/filter"
)

func TestDecode_FullTree(t *testing.T) {
	raw := `{
		"type": "AND",
		"conditions": [
			{"id": "a1", "field": "name", "operator": "contains", "value": "Dragon"},
			{"id": "a2", "field": "cmc", "operator": "greater_than", "value": 4}
		],
		"groups": [
			{"type": "or", "conditions": [
				{"field": "colors", "operator": "contains", "value": "R"},
				{"field": "rarity", "operator": "is", "value": "mythic"}
			], "groups": []}
		]
	}`

	node, diagnostics, err := filter.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, diagnostics)

	want := filter.Group{Combinator: filter.And, Children: []filter.Node{
		filter.Leaf{Field: filter.FieldName, Op: filter.OpContains, Value: "Dragon"},
		filter.Leaf{Field: filter.FieldCMC, Op: filter.OpGreaterThan, Value: "4"},
		filter.Group{Combinator: filter.Or, Children: []filter.Node{
			filter.Leaf{Field: filter.FieldColors, Op: filter.OpContains, Value: "R"},
			filter.Leaf{Field: filter.FieldRarity, Op: filter.OpIs, Value: "mythic"},
		}},
	}}
	assert.Equal(t, want, node)
}

func TestDecode_MissingPartsAreIgnoredSilently(t *testing.T) {
	raw := `{"conditions": [
		{"field": "name", "operator": "contains", "value": ""},
		{"field": "name", "operator": "contains"},
		{"field": "", "operator": "is", "value": "x"},
		{"field": "name", "value": "x"},
		{"field": "name", "operator": "contains", "value": null}
	]}`

	node, diagnostics, err := filter.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, diagnostics)

	_, ok := filter.Evaluate(node)
	assert.False(t, ok)
}

func TestDecode_InvalidLeavesAreDroppedWithDiagnostics(t *testing.T) {
	raw := `{"type": "XOR", "conditions": [
		{"field": "power", "operator": "is", "value": "3"},
		{"field": "name", "operator": "matches", "value": "x"},
		{"field": "name", "operator": "greater_than", "value": "3"},
		{"field": "cmc", "operator": "contains", "value": "3"},
		{"field": "cmc", "operator": "equals", "value": "three"},
		{"field": "cmc", "operator": "equals", "value": 2.5},
		{"field": "set_code", "operator": "is", "value": "dom"}
	]}`

	node, diagnostics, err := filter.Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, diagnostics, 7)

	assert.Equal(t, "$.type", diagnostics[0].Path)
	assert.Equal(t, "$.conditions[0]", diagnostics[1].Path)
	assert.Contains(t, diagnostics[1].Reason, "unknown field")
	assert.Contains(t, diagnostics[2].Reason, "unknown operator")
	assert.Contains(t, diagnostics[3].Reason, "does not apply")
	assert.Contains(t, diagnostics[4].Reason, "does not apply")
	assert.Contains(t, diagnostics[5].Reason, "not an integer")
	assert.Contains(t, diagnostics[6].Reason, "not an integer")

	group, ok := node.(filter.Group)
	require.True(t, ok)
	assert.Equal(t, filter.And, group.Combinator)
	assert.Equal(t, []filter.Node{filter.Leaf{Field: filter.FieldSetCode, Op: filter.OpIs, Value: "dom"}}, group.Children)
}

func TestDecode_DepthLimit(t *testing.T) {
	raw := `{"conditions":[{"field":"name","operator":"is","value":"x"}]}`
	for i := 0; i < filter.MaxDepth; i++ {
		raw = `{"groups":[` + raw + `]}`
	}

	_, diagnostics, err := filter.Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "nesting too deep", diagnostics[0].Reason)
	assert.True(t, strings.HasSuffix(diagnostics[0].Path, ".groups[0]"))
}

func TestDecode_MalformedJSON(t *testing.T) {
	for _, raw := range []string{`{"type":`, `[1,2]`, `"AND"`} {
		_, _, err := filter.Decode([]byte(raw))
		assert.Error(t, err, raw)
	}
}
