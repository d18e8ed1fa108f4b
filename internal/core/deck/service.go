// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/validate"
	"github.com/taibuivan/manabase/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for decks.
type Service struct {
	repo     Repository
	importer *Importer
	receipts ReceiptStore
	logger   *slog.Logger
}

/*
NewService constructs a new deck [Service].

Parameters:
  - repo: Repository
  - importer: *Importer
  - receipts: ReceiptStore (nil when receipts are disabled)
  - logger: *slog.Logger
*/
func NewService(repo Repository, importer *Importer, receipts ReceiptStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		importer: importer,
		receipts: receipts,
		logger:   logger,
	}
}

// # Deck Management

// ListDecks returns one page of decks, newest first.
func (service *Service) ListDecks(context context.Context, limit, offset int) ([]*Deck, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
GetDeck retrieves a deck together with its entries.

Returns:
  - *Deck: Cards holds main deck entries first, each zone by card name
  - error: NotFound when the deck does not exist
*/
func (service *Service) GetDeck(context context.Context, id string) (*Deck, error) {
	if !validate.IsUUID(id) {
		return nil, validate.InvalidID("id")
	}

	deck, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if deck.Cards, err = service.repo.ListEntries(context, id); err != nil {
		return nil, err
	}
	return deck, nil
}

// CreateDeck validates and stores an empty deck.
func (service *Service) CreateDeck(context context.Context, deck *Deck) error {
	deck.Name = strings.TrimSpace(deck.Name)

	validator := &validate.Validator{}
	validateMetadata(validator, deck.Name, deck.Description, deck.Format, deck.Tags)
	if err := validator.Err(); err != nil {
		return err
	}

	deck.ID = uuid.New()
	deck.Cards = nil
	if deck.Tags == nil {
		deck.Tags = TagList{}
	}

	if err := service.repo.Create(context, deck); err != nil {
		return err
	}

	service.logger.InfoContext(context, "deck_created",
		slog.String("deck_id", deck.ID),
		slog.String("name", deck.Name),
	)
	return nil
}

/*
UpdateDeck applies a partial update to the deck metadata.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput (nil fields are kept)

Returns:
  - *Deck: The updated deck without cards
  - error: Validation or NotFound
*/
func (service *Service) UpdateDeck(context context.Context, id string, input UpdateInput) (*Deck, error) {
	if !validate.IsUUID(id) {
		return nil, validate.InvalidID("id")
	}

	deck, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		deck.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		deck.Description = input.Description
	}
	if input.Format != nil {
		deck.Format = input.Format
	}
	if input.Tags != nil {
		deck.Tags = *input.Tags
	}

	validator := &validate.Validator{}
	validateMetadata(validator, deck.Name, deck.Description, deck.Format, deck.Tags)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, deck); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "deck_updated", slog.String("deck_id", deck.ID))
	return deck, nil
}

// DeleteDeck removes a deck and all of its entries.
func (service *Service) DeleteDeck(context context.Context, id string) error {
	if !validate.IsUUID(id) {
		return validate.InvalidID("id")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "deck_deleted", slog.String("deck_id", id))
	return nil
}

// # Deck Cards

/*
AddCard adds copies of a card to a deck.

Description: A zero quantity means one copy. Adding a card already in the
same zone increases its quantity.
*/
func (service *Service) AddCard(context context.Context, deckID string, input CardInput) (*Entry, error) {
	if !validate.IsUUID(deckID) {
		return nil, validate.InvalidID("id")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	validator := &validate.Validator{}
	validator.UUID(FieldCardID, input.CardID).Positive(FieldQuantity, input.Quantity)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByID(context, deckID); err != nil {
		return nil, err
	}

	entry, err := service.repo.AddCard(context, deckID, input.CardID, input.Quantity, input.IsSideboard)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "deck_card_added",
		slog.String("deck_id", deckID),
		slog.String("card_id", input.CardID),
		slog.Int("quantity", entry.Quantity),
		slog.Bool("is_sideboard", entry.IsSideboard),
	)
	return entry, nil
}

/*
MoveCard sets the quantity and zone of the card currently in zone fromSideboard.

Returns:
  - *Entry: The resulting entry, merged with the target zone when needed
  - error: NotFound when the deck has no such entry
*/
func (service *Service) MoveCard(context context.Context, deckID, cardID string, fromSideboard bool, input MoveInput) (*Entry, error) {
	if !validate.IsUUID(deckID) {
		return nil, validate.InvalidID("id")
	}
	if !validate.IsUUID(cardID) {
		return nil, validate.InvalidID(FieldCardID)
	}
	if err := (&validate.Validator{}).Positive(FieldQuantity, input.Quantity).Err(); err != nil {
		return nil, err
	}

	return service.repo.MoveCard(context, deckID, cardID, fromSideboard, input.Quantity, input.IsSideboard)
}

// RemoveCard removes a card from one zone of a deck, or from both when sideboard is nil.
func (service *Service) RemoveCard(context context.Context, deckID, cardID string, sideboard *bool) error {
	if !validate.IsUUID(deckID) {
		return validate.InvalidID("id")
	}
	if !validate.IsUUID(cardID) {
		return validate.InvalidID(FieldCardID)
	}

	return service.repo.RemoveCard(context, deckID, cardID, sideboard)
}

// # Statistics And Import

// Stats computes the statistics of a deck. A missing deck is NotFound.
func (service *Service) Stats(context context.Context, deckID string) (*Stats, error) {
	if !validate.IsUUID(deckID) {
		return nil, validate.InvalidID("id")
	}

	if _, err := service.repo.FindByID(context, deckID); err != nil {
		return nil, err
	}

	entries, err := service.repo.ListEntries(context, deckID)
	if err != nil {
		return nil, err
	}
	return Compute(entries), nil
}

// Import creates a deck from a plain-text deck list. See [Importer.Import].
func (service *Service) Import(context context.Context, request ImportRequest) (*ImportResult, error) {
	return service.importer.Import(context, request)
}

// ImportReceipt returns the stored result of the import that created a deck.
func (service *Service) ImportReceipt(context context.Context, deckID string) (*ImportResult, error) {
	if !validate.IsUUID(deckID) {
		return nil, validate.InvalidID("id")
	}
	if service.receipts == nil {
		return nil, apperr.NotFound("Import receipt")
	}
	return service.receipts.Load(context, deckID)
}

// validateMetadata checks the user supplied fields shared by create, update and import.
func validateMetadata(validator *validate.Validator, name string, description, format *string, tags TagList) {
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)

	if description != nil {
		validator.MaxLen(FieldDescription, *description, MaxDescriptionLength)
	}
	if format != nil {
		validator.MaxLen(FieldFormat, *format, MaxFormatLength)
	}
	for _, tag := range tags {
		validator.MaxLen(FieldTags, tag, MaxTagLength)
	}
}
