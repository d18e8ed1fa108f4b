// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/manabase/internal/core/filter"
)

func column(field filter.Field) string {
	return "c." + string(field)
}

func render(t *testing.T, node filter.Node) (string, []any) {
	t.Helper()
	predicate, ok := filter.Evaluate(node)
	require.True(t, ok, "expected a predicate")
	return filter.SQL(predicate, column, 1)
}

func TestEvaluate_LeafOperators(t *testing.T) {
	tests := []struct {
		name     string
		leaf     filter.Leaf
		wantSQL  string
		wantArgs []any
	}{
		{"contains", filter.Leaf{Field: filter.FieldName, Op: filter.OpContains, Value: "bolt"}, "c.name ILIKE $1", []any{"%bolt%"}},
		{"starts_with", filter.Leaf{Field: filter.FieldName, Op: filter.OpStartsWith, Value: "Light"}, "c.name ILIKE $1", []any{"Light%"}},
		{"ends_with", filter.Leaf{Field: filter.FieldTypeLine, Op: filter.OpEndsWith, Value: "Wizard"}, "c.type_line ILIKE $1", []any{"%Wizard"}},
		{"is_text", filter.Leaf{Field: filter.FieldRarity, Op: filter.OpIs, Value: "Rare"}, "LOWER(c.rarity) = LOWER($1)", []any{"Rare"}},
		{"is_numeric", filter.Leaf{Field: filter.FieldCMC, Op: filter.OpIs, Value: "3"}, "c.cmc = $1", []any{3}},
		{"equals", filter.Leaf{Field: filter.FieldCMC, Op: filter.OpEquals, Value: "2"}, "c.cmc = $1", []any{2}},
		{"greater_than", filter.Leaf{Field: filter.FieldCMC, Op: filter.OpGreaterThan, Value: "4"}, "c.cmc > $1", []any{4}},
		{"less_than", filter.Leaf{Field: filter.FieldCMC, Op: filter.OpLessThan, Value: "2"}, "c.cmc < $1", []any{2}},
		{"escapes_wildcards", filter.Leaf{Field: filter.FieldName, Op: filter.OpContains, Value: `50%_off\`}, "c.name ILIKE $1", []any{`%50\%\_off\\%`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := render(t, tt.leaf)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEvaluate_ColorsContainsRequiresEveryColor(t *testing.T) {
	sql, args := render(t, filter.Leaf{Field: filter.FieldColors, Op: filter.OpContains, Value: "U, B"})

	assert.Equal(t, "(c.colors ILIKE $1 AND c.colors ILIKE $2)", sql)
	assert.Equal(t, []any{"%U%", "%B%"}, args)
}

func TestEvaluate_ColorsContainsInsideOrStaysConjunctive(t *testing.T) {
	node := filter.Group{Combinator: filter.Or, Children: []filter.Node{
		filter.Leaf{Field: filter.FieldColors, Op: filter.OpContains, Value: "U,B"},
		filter.Leaf{Field: filter.FieldName, Op: filter.OpIs, Value: "Island"},
	}}

	sql, _ := render(t, node)
	assert.Equal(t, "((c.colors ILIKE $1 AND c.colors ILIKE $2) OR LOWER(c.name) = LOWER($3))", sql)
}

func TestEvaluate_NestedGroups(t *testing.T) {
	node := filter.Group{Children: []filter.Node{
		filter.Leaf{Field: filter.FieldRarity, Op: filter.OpIs, Value: "rare"},
		filter.Group{Combinator: filter.Or, Children: []filter.Node{
			filter.Leaf{Field: filter.FieldCMC, Op: filter.OpLessThan, Value: "2"},
			filter.Leaf{Field: filter.FieldTypeLine, Op: filter.OpContains, Value: "Instant"},
		}},
	}}

	sql, args := render(t, node)
	assert.Equal(t, "(LOWER(c.rarity) = LOWER($1) AND (c.cmc < $2 OR c.type_line ILIKE $3))", sql)
	assert.Equal(t, []any{"rare", 2, "%Instant%"}, args)
}

func TestEvaluate_AbsentChildDoesNotAffectParent(t *testing.T) {
	leaf := filter.Leaf{Field: filter.FieldName, Op: filter.OpContains, Value: "bolt"}
	empty := filter.Group{Children: []filter.Node{
		filter.Leaf{Field: filter.FieldName, Op: filter.OpContains, Value: "  "},
		filter.Group{},
	}}

	for _, combinator := range []filter.Combinator{filter.And, filter.Or} {
		t.Run(string(combinator), func(t *testing.T) {
			withEmpty, _ := render(t, filter.Group{Combinator: combinator, Children: []filter.Node{leaf, empty}})
			alone, _ := render(t, leaf)
			assert.Equal(t, alone, withEmpty)
		})
	}
}

func TestEvaluate_AbsentGroups(t *testing.T) {
	tests := []struct {
		name string
		node filter.Node
	}{
		{"empty_group", filter.Group{}},
		{"nested_empty_groups", filter.Group{Children: []filter.Node{filter.Group{}, filter.Group{Combinator: filter.Or}}}},
		{"blank_value", filter.Leaf{Field: filter.FieldName, Op: filter.OpIs, Value: ""}},
		{"colors_only_commas", filter.Leaf{Field: filter.FieldColors, Op: filter.OpContains, Value: " , ,"}},
		{"numeric_op_on_text", filter.Leaf{Field: filter.FieldName, Op: filter.OpGreaterThan, Value: "3"}},
		{"non_integer_cmc", filter.Leaf{Field: filter.FieldCMC, Op: filter.OpEquals, Value: "x"}},
		{"nil_group_pointer", (*filter.Group)(nil)},
		{"nil_node", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate, ok := filter.Evaluate(tt.node)
			assert.False(t, ok)
			assert.Nil(t, predicate)
		})
	}
}

func TestSQL_PlaceholderOffset(t *testing.T) {
	predicate, ok := filter.Evaluate(filter.Leaf{Field: filter.FieldSetCode, Op: filter.OpIs, Value: "m11"})
	require.True(t, ok)

	sql, args := filter.SQL(predicate, column, 4)
	assert.Equal(t, "LOWER(c.set_code) = LOWER($4)", sql)
	assert.Equal(t, []any{"m11"}, args)

	sql, args = filter.SQL(nil, column, 1)
	assert.Empty(t, sql)
	assert.Nil(t, args)
}
