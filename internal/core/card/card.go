// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package card manages the card catalog.

It owns the [Card] entity, catalog search (simple parameters and advanced
filter groups), and the [Resolver] that turns a card name into a catalog
record by consulting the local store first and Scryfall second.

# Core Responsibility

  - Catalog: CRUD over locally stored card definitions.
  - Search: Paginated lookups with a total count taken before pagination.
  - Resolution: Name and printing lookups with idempotent insertion.
*/
package card

import (
	"strconv"
	"time"

	"github.com/taibuivan/manabase/internal/core/filter"
)

// # Field Names

// Field names used in validation errors.
const (
	FieldName       = "name"
	FieldScryfallID = "scryfall_id"
	FieldCMC        = "cmc"
	FieldColors     = "colors"
	FieldNamePrefix = "name_prefix"
	FieldSetCode    = "set_code"
	FieldNumber     = "collector_number"
)

// Keys of [Card.AdditionalData].
const (
	DataKeywords   = "keywords"
	DataLegalities = "legalities"
	DataPrices     = "prices"
)

// Autocomplete bounds.
const (
	DefaultAutocompleteLimit = 10
	MaxAutocompleteLimit     = 50
)

// # Core Entities

// Card is a canonical card definition.
type Card struct {
	ID              string         `json:"id"` // UUIDv7
	ScryfallID      *string        `json:"scryfall_id,omitempty"`
	Name            string         `json:"name"`
	ManaCost        string         `json:"mana_cost,omitempty"`
	CMC             *int           `json:"cmc"`
	Colors          []string       `json:"colors"`
	TypeLine        string         `json:"type_line,omitempty"`
	Rarity          string         `json:"rarity,omitempty"`
	SetCode         string         `json:"set_code,omitempty"`
	CollectorNumber string         `json:"collector_number,omitempty"`
	OracleText      string         `json:"oracle_text,omitempty"`
	ImageURI        string         `json:"image_uri,omitempty"`
	AdditionalData  map[string]any `json:"additional_data"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Prices returns the price map from the auxiliary data, if any.
func (c *Card) Prices() map[string]any {
	prices, _ := c.AdditionalData[DataPrices].(map[string]any)
	return prices
}

// # Search

// SearchParams holds the simple search parameters and an optional advanced filter.
type SearchParams struct {
	Name     string
	Colors   string
	TypeLine string
	CMC      *int
	Rarity   string
	SetCode  string

	// Advanced is a decoded filter group. Nil when absent or malformed.
	Advanced filter.Node
}

// Node folds the simple parameters and the advanced filter into one AND group.
func (p SearchParams) Node() filter.Node {
	group := filter.Group{Combinator: filter.And}

	add := func(field filter.Field, op filter.Operator, value string) {
		if value != "" {
			group.Children = append(group.Children, filter.Leaf{Field: field, Op: op, Value: value})
		}
	}

	add(filter.FieldName, filter.OpContains, p.Name)
	add(filter.FieldColors, filter.OpContains, p.Colors)
	add(filter.FieldTypeLine, filter.OpContains, p.TypeLine)
	add(filter.FieldRarity, filter.OpIs, p.Rarity)
	add(filter.FieldSetCode, filter.OpIs, p.SetCode)
	if p.CMC != nil {
		add(filter.FieldCMC, filter.OpEquals, strconv.Itoa(*p.CMC))
	}

	if p.Advanced != nil {
		group.Children = append(group.Children, p.Advanced)
	}

	return group
}
