// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter

import (
	"fmt"
	"strings"
)

// ColumnFunc maps a field to a qualified SQL column.
type ColumnFunc func(Field) string

type renderer struct {
	builder strings.Builder
	args    []any
	next    int
	column  ColumnFunc
}

/*
SQL renders a predicate as a parameterised Postgres expression.

Placeholders start at $firstArg so the fragment can be appended to a query
that already binds arguments.

Returns:
  - string: the boolean expression, without a leading WHERE
  - []any: the arguments bound to the placeholders, in order
*/
func SQL(predicate Predicate, column ColumnFunc, firstArg int) (string, []any) {
	if predicate == nil {
		return "", nil
	}
	r := &renderer{next: firstArg, column: column}
	predicate.render(r)
	return r.builder.String(), r.args
}

func (r *renderer) bind(arg any) string {
	r.args = append(r.args, arg)
	placeholder := fmt.Sprintf("$%d", r.next)
	r.next++
	return placeholder
}

func (c comparison) render(r *renderer) {
	column := r.column(c.field)
	if c.fold {
		fmt.Fprintf(&r.builder, "LOWER(%s) = LOWER(%s)", column, r.bind(c.arg))
		return
	}
	fmt.Fprintf(&r.builder, "%s %s %s", column, c.sqlOp, r.bind(c.arg))
}

func (c compound) render(r *renderer) {
	r.builder.WriteString("(")
	for i, part := range c.parts {
		if i > 0 {
			fmt.Fprintf(&r.builder, " %s ", c.combinator)
		}
		part.render(r)
	}
	r.builder.WriteString(")")
}
