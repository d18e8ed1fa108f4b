// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/manabase/internal/core/filter"
	"github.com/taibuivan/manabase/internal/platform/validate"
	"github.com/taibuivan/manabase/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the card catalog.
type Service struct {
	repo     Repository
	resolver *Resolver
	logger   *slog.Logger
}

// NewService constructs a new card [Service].
func NewService(repo Repository, resolver *Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// # Catalog Search

/*
Search returns one page of cards matching the parameters.

Parameters:
  - context: context.Context
  - params: SearchParams
  - limit, offset: int

Returns:
  - []*Card: Matching cards
  - int: Total matches before pagination
  - error: Retrieval errors
*/
func (service *Service) Search(context context.Context, params SearchParams, limit, offset int) ([]*Card, int, error) {
	predicate, _ := filter.Evaluate(params.Node())
	return service.repo.Search(context, predicate, limit, offset)
}

/*
Autocomplete suggests card names for a prefix.

Parameters:
  - context: context.Context
  - prefix: string (required)
  - limit: int (clamped to [1, MaxAutocompleteLimit])

Returns:
  - []string: Distinct names
  - error: Validation or retrieval errors
*/
func (service *Service) Autocomplete(context context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if err := (&validate.Validator{}).Required(FieldNamePrefix, prefix).Err(); err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = DefaultAutocompleteLimit
	}
	if limit > MaxAutocompleteLimit {
		limit = MaxAutocompleteLimit
	}

	return service.repo.Autocomplete(context, prefix, limit)
}

// # Card Management

// GetCard retrieves a card by its UUID.
func (service *Service) GetCard(context context.Context, id string) (*Card, error) {
	if !validate.IsUUID(id) {
		return nil, validate.InvalidID("id")
	}
	return service.repo.FindByID(context, id)
}

// CreateCard validates and stores a manually entered card.
func (service *Service) CreateCard(context context.Context, card *Card) error {
	if err := validateCard(card); err != nil {
		return err
	}

	card.ID = uuid.New()
	if card.AdditionalData == nil {
		card.AdditionalData = map[string]any{}
	}

	if err := service.repo.Create(context, card); err != nil {
		return err
	}

	service.logger.InfoContext(context, "card_created",
		slog.String("card_id", card.ID),
		slog.String("name", card.Name),
	)
	return nil
}

// UpdateCard replaces the mutable fields of an existing card.
func (service *Service) UpdateCard(context context.Context, card *Card) error {
	if !validate.IsUUID(card.ID) {
		return validate.InvalidID("id")
	}
	if err := validateCard(card); err != nil {
		return err
	}

	if err := service.repo.Update(context, card); err != nil {
		return err
	}

	service.logger.InfoContext(context, "card_updated", slog.String("card_id", card.ID))
	return nil
}

// DeleteCard removes a card that no deck references.
func (service *Service) DeleteCard(context context.Context, id string) error {
	if !validate.IsUUID(id) {
		return validate.InvalidID("id")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "card_deleted", slog.String("card_id", id))
	return nil
}

// # External Fetch

/*
FetchByName returns the catalog card with this exact name, fetching and
storing it from the external source when the catalog has none.

Returns:
  - *Card: The stored card
  - error: NotFound when the source has no such card, BadGateway on source failure
*/
func (service *Service) FetchByName(context context.Context, name string) (*Card, error) {
	name = strings.TrimSpace(name)
	if err := (&validate.Validator{}).Required(FieldName, name).Err(); err != nil {
		return nil, err
	}

	candidate, err := service.resolver.Resolve(context, name)
	if err != nil {
		return nil, err
	}
	return service.resolver.GetOrCreate(context, candidate)
}

// FetchByPrinting is [Service.FetchByName] for a set code and collector number.
func (service *Service) FetchByPrinting(context context.Context, setCode, number string) (*Card, error) {
	setCode, number = strings.TrimSpace(setCode), strings.TrimSpace(number)

	validator := &validate.Validator{}
	validator.Required(FieldSetCode, setCode).Required(FieldNumber, number)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	candidate, err := service.resolver.ResolvePrinting(context, setCode, number)
	if err != nil {
		return nil, err
	}
	return service.resolver.GetOrCreate(context, candidate)
}

func validateCard(card *Card) error {
	card.Name = strings.TrimSpace(card.Name)
	if card.ScryfallID != nil && strings.TrimSpace(*card.ScryfallID) == "" {
		card.ScryfallID = nil
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, card.Name).MaxLen(FieldName, card.Name, 200)

	if card.CMC != nil {
		validator.Range(FieldCMC, *card.CMC, 0, 1000000)
	}
	if card.ScryfallID != nil {
		validator.UUID(FieldScryfallID, *card.ScryfallID)
	}
	for _, color := range card.Colors {
		validator.Custom(FieldColors, strings.Contains(color, ","), "Color symbols must not contain commas")
	}

	return validator.Err()
}
