// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package deck manages decks and the cards they contain.

# Core Responsibility

  - Decks: CRUD over named card collections.
  - Entries: Zone-aware card membership with merged quantities.
  - Import: Plain-text deck lists resolved against the card catalog.
  - Statistics: Distribution summaries over a deck's entries.
*/
package deck

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/pkg/query"
)

// # Field Names

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldFormat      = "format"
	FieldTags        = "tags"
	FieldDeckText    = "deck_text"
	FieldCardID      = "card_id"
	FieldQuantity    = "quantity"
)

// Length limits for deck metadata.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 5000
	MaxFormatLength      = 50
	MaxTagLength         = 50
)

// # Core Entities

// Deck is a named collection of cards.
type Deck struct {
	ID          string    `json:"id"` // UUIDv7
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Format      *string   `json:"format,omitempty"`
	Tags        TagList   `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Cards is only populated when the deck is fetched individually.
	Cards []*Entry `json:"cards,omitempty"`
}

// Entry records N copies of a card in one zone of a deck.
//
// A deck holds at most one entry per card and zone.
type Entry struct {
	DeckID      string     `json:"deck_id"`
	CardID      string     `json:"card_id"`
	Quantity    int        `json:"quantity"`
	IsSideboard bool       `json:"is_sideboard"`
	AddedAt     time.Time  `json:"added_at"`
	Card        *card.Card `json:"card,omitempty"`
}

// TagList is a set of free-text tags. It is stored comma-joined and accepts
// either a JSON array or a comma-joined string on input.
type TagList []string

// UnmarshalJSON implements [json.Unmarshaler].
func (tags *TagList) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*tags = ParseTags(joined)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*tags = ParseTags(strings.Join(list, ","))
	return nil
}

// String returns the comma-joined storage form.
func (tags TagList) String() string {
	return strings.Join(tags, ",")
}

// ParseTags splits a comma-joined tag string, dropping blanks.
func ParseTags(joined string) TagList {
	tags := query.StringSlice(joined)
	if tags == nil {
		return TagList{}
	}
	return tags
}

// # Inputs

// UpdateInput carries a partial deck update. Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Format      *string  `json:"format"`
	Tags        *TagList `json:"tags"`
}

// CardInput adds copies of a card to a deck.
type CardInput struct {
	CardID      string `json:"card_id"`
	Quantity    int    `json:"quantity"`
	IsSideboard bool   `json:"is_sideboard"`
}

// MoveInput sets the quantity and zone of an existing entry.
type MoveInput struct {
	Quantity    int  `json:"quantity"`
	IsSideboard bool `json:"is_sideboard"`
}

// ImportRequest is a plain-text deck list with the metadata of the deck to create.
type ImportRequest struct {
	DeckText    string  `json:"deck_text"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Format      *string `json:"format,omitempty"`
	Tags        TagList `json:"tags,omitempty"`
}

// ImportResult summarises a completed import.
type ImportResult struct {
	DeckID         string    `json:"deck_id"`
	Name           string    `json:"name"`
	MainDeckCount  int       `json:"main_deck_count"`
	SideboardCount int       `json:"sideboard_count"`
	UniqueCards    int       `json:"unique_cards"`
	Unresolved     []string  `json:"unresolved"`
	ImportedAt     time.Time `json:"imported_at"`
}

// # Statistics

// UnknownCMC is the mana curve bucket for cards without a mana value.
const UnknownCMC = "Unknown"

// Stats summarises the contents of a deck. Every bucket counts copies, not entries.
type Stats struct {
	TotalCards         int             `json:"total_cards"`
	MainDeckCount      int             `json:"main_deck_count"`
	SideboardCount     int             `json:"sideboard_count"`
	ColorDistribution  map[string]int  `json:"color_distribution"`
	ManaCurve          map[string]int  `json:"mana_curve"`
	CardTypes          map[string]int  `json:"card_types"`
	RarityDistribution map[string]int  `json:"rarity_distribution"`
	EstimatedValueUSD  decimal.Decimal `json:"estimated_value_usd"`
}
