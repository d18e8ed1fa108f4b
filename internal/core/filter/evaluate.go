// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter

import (
	"strconv"
	"strings"
)

// Predicate is a boolean condition over card columns, ready to be rendered with [SQL].
type Predicate interface {
	render(r *renderer)
}

// comparison is a single column test.
type comparison struct {
	field Field
	sqlOp string
	arg   any
	fold  bool
}

// compound joins predicates with a combinator. It always holds at least one part.
type compound struct {
	combinator Combinator
	parts      []Predicate
}

/*
Evaluate turns a filter tree into a predicate.

The boolean is false when the node contributes nothing: an ignored leaf, or
a group whose children all evaluate to nothing. Such nodes are left out of
their parent entirely, so they never narrow or widen unrelated results.
*/
func Evaluate(node Node) (Predicate, bool) {
	switch n := node.(type) {
	case Leaf:
		return evaluateLeaf(n)
	case *Leaf:
		if n == nil {
			return nil, false
		}
		return evaluateLeaf(*n)
	case Group:
		return evaluateGroup(n)
	case *Group:
		if n == nil {
			return nil, false
		}
		return evaluateGroup(*n)
	default:
		return nil, false
	}
}

func evaluateGroup(group Group) (Predicate, bool) {
	var parts []Predicate
	for _, child := range group.Children {
		if predicate, ok := Evaluate(child); ok {
			parts = append(parts, predicate)
		}
	}
	return combine(group.combinator(), parts)
}

func evaluateLeaf(leaf Leaf) (Predicate, bool) {
	value := strings.TrimSpace(leaf.Value)
	if value == "" || !fields[leaf.Field] || !operators[leaf.Op] || !leaf.Op.Applies(leaf.Field) {
		return nil, false
	}

	if leaf.Field.Numeric() {
		number, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}
		sqlOp := "="
		switch leaf.Op {
		case OpGreaterThan:
			sqlOp = ">"
		case OpLessThan:
			sqlOp = "<"
		}
		return comparison{field: leaf.Field, sqlOp: sqlOp, arg: number}, true
	}

	// A card must carry every listed color.
	if leaf.Field == FieldColors && leaf.Op == OpContains {
		var parts []Predicate
		for _, color := range strings.Split(value, ",") {
			if color = strings.TrimSpace(color); color != "" {
				parts = append(parts, textComparison(leaf.Field, OpContains, color))
			}
		}
		return combine(And, parts)
	}

	return textComparison(leaf.Field, leaf.Op, value), true
}

func textComparison(field Field, op Operator, value string) Predicate {
	switch op {
	case OpContains:
		return comparison{field: field, sqlOp: "ILIKE", arg: "%" + escapeLike(value) + "%"}
	case OpStartsWith:
		return comparison{field: field, sqlOp: "ILIKE", arg: escapeLike(value) + "%"}
	case OpEndsWith:
		return comparison{field: field, sqlOp: "ILIKE", arg: "%" + escapeLike(value)}
	default:
		return comparison{field: field, sqlOp: "=", arg: value, fold: true}
	}
}

func combine(combinator Combinator, parts []Predicate) (Predicate, bool) {
	switch len(parts) {
	case 0:
		return nil, false
	case 1:
		return parts[0], true
	default:
		return compound{combinator: combinator, parts: parts}, true
	}
}

// escapeLike neutralises LIKE wildcards so user input only matches literally.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
