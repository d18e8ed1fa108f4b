// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package decklist parses the plain-text deck list format exported by MTG Arena
and most deck builders.

Each card line is "<quantity> <name>", optionally followed by an Arena
printing suffix "(<SET>) <collector number>":

	4 Lightning Bolt
	2 Shock (M21) 159

	2 Duress

The first blank line after at least one main deck card starts the sideboard.
The switch is one way. Lines that are not card lines are skipped.
*/
package decklist

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/taibuivan/manabase/pkg/slice"
)

var (
	lineRegex     = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	printingRegex = regexp.MustCompile(`^(.+?)\s+\(([A-Za-z0-9]{2,6})\)(?:\s+(\S+))?$`)
)

// Printing pins an entry to one specific print of a card.
type Printing struct {
	SetCode string `json:"set_code"`
	Number  string `json:"collector_number"`
}

// Entry is one card line.
type Entry struct {
	Quantity int       `json:"quantity"`
	Name     string    `json:"name"`
	Printing *Printing `json:"printing,omitempty"`
}

// List is a parsed deck list. Both zones preserve input order.
type List struct {
	Main      []Entry `json:"main"`
	Sideboard []Entry `json:"sideboard"`
}

// Parse splits text into main deck and sideboard entries. It never fails.
func Parse(text string) List {
	list := List{Main: []Entry{}, Sideboard: []Entry{}}
	inSideboard := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			if len(list.Main) > 0 {
				inSideboard = true
			}
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			continue
		}

		if inSideboard {
			list.Sideboard = append(list.Sideboard, entry)
		} else {
			list.Main = append(list.Main, entry)
		}
	}

	return list
}

func parseLine(line string) (Entry, bool) {
	matches := lineRegex.FindStringSubmatch(line)
	if matches == nil {
		return Entry{}, false
	}

	quantity, err := strconv.Atoi(matches[1])
	if err != nil || quantity < 1 {
		return Entry{}, false
	}

	entry := Entry{Quantity: quantity}
	name := matches[2]

	if printing := printingRegex.FindStringSubmatch(name); printing != nil {
		name = printing[1]
		if printing[3] != "" {
			entry.Printing = &Printing{SetCode: strings.ToLower(printing[2]), Number: printing[3]}
		}
	}

	entry.Name = NormalizeName(name)
	if entry.Name == "" {
		return Entry{}, false
	}
	return entry, true
}

// NormalizeName folds a card name to NFC with narrow-width characters and
// single spaces, so that copies pasted from different sources deduplicate.
func NormalizeName(name string) string {
	name = width.Fold.String(norm.NFC.String(name))
	return strings.Join(strings.Fields(name), " ")
}

// Names returns every distinct card name, main deck first, in input order.
func (l List) Names() []string {
	seen := make(map[string]bool, len(l.Main)+len(l.Sideboard))
	var names []string
	for _, entry := range l.Entries() {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			names = append(names, entry.Name)
		}
	}
	return names
}

// Entries returns the main deck followed by the sideboard.
func (l List) Entries() []Entry {
	all := make([]Entry, 0, len(l.Main)+len(l.Sideboard))
	all = append(all, l.Main...)
	return append(all, l.Sideboard...)
}

// Printings returns the first printing hint seen for each name.
func (l List) Printings() map[string]Printing {
	hints := make(map[string]Printing)
	for _, entry := range l.Entries() {
		if entry.Printing == nil {
			continue
		}
		if _, ok := hints[entry.Name]; !ok {
			hints[entry.Name] = *entry.Printing
		}
	}
	return hints
}

// MainCount is the number of main deck cards, counting copies.
func (l List) MainCount() int { return sum(l.Main) }

// SideboardCount is the number of sideboard cards, counting copies.
func (l List) SideboardCount() int { return sum(l.Sideboard) }

// Empty reports whether no card line was recognised.
func (l List) Empty() bool {
	return len(l.Main) == 0 && len(l.Sideboard) == 0
}

func sum(entries []Entry) int {
	return slice.Reduce(entries, 0, func(total int, entry Entry) int { return total + entry.Quantity })
}
