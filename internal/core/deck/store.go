// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import "context"

// # Deck Data Access

// Repository defines the data access contract for decks and their entries.
type Repository interface {

	/*
		List returns a page of decks, newest first, without their cards.

		Returns:
		  - []*Deck: The page
		  - int: Total number of decks
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Deck, int, error)

	// FindByID retrieves a deck without its cards.
	FindByID(context context.Context, id string) (*Deck, error)

	// Create persists a new deck.
	Create(context context.Context, deck *Deck) error

	// Update replaces the metadata of an existing deck.
	Update(context context.Context, deck *Deck) error

	// Delete removes a deck together with its entries.
	Delete(context context.Context, id string) error

	// # Entries

	/*
		ListEntries returns every entry of a deck joined with its card,
		main deck first, then by card name.
	*/
	ListEntries(context context.Context, deckID string) ([]*Entry, error)

	/*
		AddCard adds copies of a card to one zone of a deck. When the zone
		already holds the card the quantities are summed.

		Returns:
		  - *Entry: The entry after the merge
		  - error: NotFound for an unknown card, database failures
	*/
	AddCard(context context.Context, deckID, cardID string, quantity int, sideboard bool) (*Entry, error)

	/*
		MoveCard rewrites the entry in zone fromSideboard with a new quantity
		and zone. Moving into a zone that already holds the card merges the
		two entries.
	*/
	MoveCard(context context.Context, deckID, cardID string, fromSideboard bool, quantity int, toSideboard bool) (*Entry, error)

	// RemoveCard deletes the card from one zone, or from both when sideboard is nil.
	RemoveCard(context context.Context, deckID, cardID string, sideboard *bool) error
}

// ReceiptStore keeps import results for later retrieval.
type ReceiptStore interface {

	// Save stores the result under its deck id.
	Save(context context.Context, result *ImportResult) error

	// Load returns the stored result or NotFound when absent or expired.
	Load(context context.Context, deckID string) (*ImportResult, error)
}
