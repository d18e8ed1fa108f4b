// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"

	"github.com/taibuivan/manabase/internal/core/filter"
)

// # Card Data Access

// Repository defines the data access contract for the card catalog.
type Repository interface {

	/*
		Search returns a page of cards matching the predicate and the total
		number of matches before pagination.

		Parameters:
		  - context: context.Context
		  - predicate: filter.Predicate (nil matches every card)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Card: Matching cards ordered by name
		  - int: Total match count
		  - error: Database retrieval failures
	*/
	Search(context context.Context, predicate filter.Predicate, limit, offset int) ([]*Card, int, error)

	// FindByID retrieves a card by its UUID.
	FindByID(context context.Context, id string) (*Card, error)

	// FindByName retrieves a card by its exact name.
	FindByName(context context.Context, name string) (*Card, error)

	// FindByScryfallID retrieves a card by its external identifier.
	FindByScryfallID(context context.Context, scryfallID string) (*Card, error)

	// FindByPrinting retrieves a card by set code and collector number.
	FindByPrinting(context context.Context, setCode, number string) (*Card, error)

	// Create persists a new card. A duplicate Scryfall ID is a conflict.
	Create(context context.Context, card *Card) error

	// Update replaces the mutable fields of an existing card.
	Update(context context.Context, card *Card) error

	// Delete removes a card. Cards still used by a deck cannot be deleted.
	Delete(context context.Context, id string) error

	// Autocomplete returns distinct names starting with prefix, case-insensitively.
	Autocomplete(context context.Context, prefix string, limit int) ([]string, error)
}
