// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxDepth bounds group nesting. Deeper groups are dropped.
const MaxDepth = 16

// Diagnostic describes a part of the input that was dropped while decoding.
type Diagnostic struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// wireGroup is the JSON shape produced by the search UI.
type wireGroup struct {
	Type       string          `json:"type"`
	Conditions []wireCondition `json:"conditions"`
	Groups     []wireGroup     `json:"groups"`
}

type wireCondition struct {
	Field    string          `json:"field"`
	Operator string          `json:"operator"`
	Value    json.RawMessage `json:"value"`
}

/*
Decode parses a filter group from JSON.

Conditions with a missing field, operator or value are ignored silently.
Conditions naming an unknown field or operator, or pairing an operator with
a field it does not apply to, are dropped and reported.

Returns:
  - Node: the decoded [Group]
  - []Diagnostic: one entry per dropped element
  - error: only when the payload is not a JSON object
*/
func Decode(raw []byte) (Node, []Diagnostic, error) {
	var root wireGroup
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&root); err != nil {
		return nil, nil, fmt.Errorf("filter: malformed filter group: %w", err)
	}

	var diagnostics []Diagnostic
	group := decodeGroup(root, "$", 1, &diagnostics)
	return group, diagnostics, nil
}

func decodeGroup(wire wireGroup, path string, depth int, diagnostics *[]Diagnostic) Group {
	group := Group{Combinator: And}

	switch strings.ToUpper(strings.TrimSpace(wire.Type)) {
	case "", string(And):
	case string(Or):
		group.Combinator = Or
	default:
		*diagnostics = append(*diagnostics, Diagnostic{Path: path + ".type", Reason: fmt.Sprintf("unknown combinator %q, using AND", wire.Type)})
	}

	for i, condition := range wire.Conditions {
		if leaf, ok := decodeLeaf(condition, fmt.Sprintf("%s.conditions[%d]", path, i), diagnostics); ok {
			group.Children = append(group.Children, leaf)
		}
	}

	for i, child := range wire.Groups {
		childPath := fmt.Sprintf("%s.groups[%d]", path, i)
		if depth >= MaxDepth {
			*diagnostics = append(*diagnostics, Diagnostic{Path: childPath, Reason: "nesting too deep"})
			continue
		}
		group.Children = append(group.Children, decodeGroup(child, childPath, depth+1, diagnostics))
	}

	return group
}

func decodeLeaf(wire wireCondition, path string, diagnostics *[]Diagnostic) (Leaf, bool) {
	value := scalar(wire.Value)
	if strings.TrimSpace(wire.Field) == "" || strings.TrimSpace(wire.Operator) == "" || value == "" {
		return Leaf{}, false
	}

	drop := func(reason string) (Leaf, bool) {
		*diagnostics = append(*diagnostics, Diagnostic{Path: path, Reason: reason})
		return Leaf{}, false
	}

	field, ok := ParseField(wire.Field)
	if !ok {
		return drop(fmt.Sprintf("unknown field %q", wire.Field))
	}

	op, ok := ParseOperator(wire.Operator)
	if !ok {
		return drop(fmt.Sprintf("unknown operator %q", wire.Operator))
	}

	if !op.Applies(field) {
		return drop(fmt.Sprintf("operator %q does not apply to field %q", op, field))
	}

	if field.Numeric() {
		if _, err := strconv.Atoi(value); err != nil {
			return drop(fmt.Sprintf("value %q is not an integer", value))
		}
	}

	return Leaf{Field: field, Op: op, Value: value}, true
}

// scalar renders a JSON string or number as text. Anything else is treated as missing.
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}

	return ""
}
