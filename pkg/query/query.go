// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query splits the comma-joined lists used in query strings and in
// stored card colors and deck tags.
package query

import "strings"

// StringSlice parses a comma-separated string into trimmed, non-empty parts.
// It returns nil when nothing remains.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
