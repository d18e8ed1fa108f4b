// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filter implements the advanced card search expression tree.

A filter is a tree of [Node] values. A [Leaf] compares one card attribute
with a value; a [Group] combines its children with AND or OR. Trees are
built by [Decode] from the JSON the search UI sends, and turned into a SQL
predicate by [Evaluate] and [SQL].

Malformed input degrades the filter instead of failing the request: leaves
with a missing part are ignored, and leaves naming an unknown field or
operator are dropped and reported as a [Diagnostic].
*/
package filter

import "strings"

// # Fields

// Field identifies a searchable card attribute.
type Field string

const (
	FieldName     Field = "name"
	FieldTypeLine Field = "type_line"
	FieldColors   Field = "colors"
	FieldRarity   Field = "rarity"
	FieldCMC      Field = "cmc"
	FieldSetCode  Field = "set_code"
)

var fields = map[Field]bool{
	FieldName:     true,
	FieldTypeLine: true,
	FieldColors:   true,
	FieldRarity:   true,
	FieldCMC:      true,
	FieldSetCode:  true,
}

// ParseField resolves a wire identifier into a [Field].
func ParseField(raw string) (Field, bool) {
	field := Field(strings.ToLower(strings.TrimSpace(raw)))
	return field, fields[field]
}

// Numeric reports whether the field holds an integer.
func (f Field) Numeric() bool {
	return f == FieldCMC
}

// # Operators

// Operator is a comparison applied by a [Leaf].
type Operator string

const (
	OpIs          Operator = "is"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpEquals      Operator = "equals"
)

var operators = map[Operator]bool{
	OpIs:          true,
	OpContains:    true,
	OpStartsWith:  true,
	OpEndsWith:    true,
	OpGreaterThan: true,
	OpLessThan:    true,
	OpEquals:      true,
}

// ParseOperator resolves a wire identifier into an [Operator].
func ParseOperator(raw string) (Operator, bool) {
	op := Operator(strings.ToLower(strings.TrimSpace(raw)))
	return op, operators[op]
}

// Applies reports whether the operator is meaningful for the field.
// Numeric comparisons only apply to numeric fields, pattern matches only to
// text fields, and "is" applies to both.
func (op Operator) Applies(field Field) bool {
	switch op {
	case OpIs:
		return true
	case OpGreaterThan, OpLessThan, OpEquals:
		return field.Numeric()
	default:
		return !field.Numeric()
	}
}

// # Combinators

// Combinator joins the children of a [Group].
type Combinator string

const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

// # Tree

// Node is either a [Leaf] or a [Group].
type Node interface {
	isNode()
}

// Leaf compares one field with a value.
type Leaf struct {
	Field Field
	Op    Operator
	Value string
}

// Group combines child nodes. An empty combinator means AND.
type Group struct {
	Combinator Combinator
	Children   []Node
}

func (Leaf) isNode()  {}
func (Group) isNode() {}

// combinator returns the effective combinator.
func (g Group) combinator() Combinator {
	if g.Combinator == Or {
		return Or
	}
	return And
}
