// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/dberr"
	"github.com/taibuivan/manabase/internal/platform/scryfall"
	"github.com/taibuivan/manabase/pkg/uuid"
)

// Source is the external card database consulted when the catalog has no match.
type Source interface {
	CardByName(context context.Context, name string) (*scryfall.Card, error)
	CardBySetNumber(context context.Context, setCode, number string) (*scryfall.Card, error)
}

// Resolver turns card references into catalog records.
//
// # Concurrency
//
// Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	repo   Repository
	source Source
	logger *slog.Logger
}

// NewResolver constructs a [Resolver].
func NewResolver(repo Repository, source Source, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, source: source, logger: logger}
}

/*
Resolve finds a card by exact name.

The local catalog is checked first. On a miss the card is fetched from the
external source and normalised, but not saved; see [Resolver.GetOrCreate].

Returns:
  - *Card: A stored card (ID set) or an unsaved candidate (ID empty)
  - error: NotFound when no source knows the name, BadGateway on source failure
*/
func (resolver *Resolver) Resolve(context context.Context, name string) (*Card, error) {
	local, err := resolver.repo.FindByName(context, name)
	if err == nil {
		return local, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	external, err := resolver.source.CardByName(context, name)
	if err != nil {
		return nil, resolver.sourceError(context, err, slog.String("name", name))
	}

	return FromExternal(external), nil
}

/*
ResolvePrinting finds a card by set code and collector number, with the same
local-then-external order as [Resolver.Resolve].
*/
func (resolver *Resolver) ResolvePrinting(context context.Context, setCode, number string) (*Card, error) {
	local, err := resolver.repo.FindByPrinting(context, setCode, number)
	if err == nil {
		return local, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	external, err := resolver.source.CardBySetNumber(context, setCode, number)
	if err != nil {
		return nil, resolver.sourceError(context, err,
			slog.String("set_code", setCode),
			slog.String("collector_number", number),
		)
	}

	return FromExternal(external), nil
}

/*
GetOrCreate returns the stored card matching candidate, inserting it only if
neither its Scryfall ID nor its name is already known.

Calling it repeatedly with the same candidate always yields the same card.
A concurrent insert of the same card is absorbed by re-reading after the
unique violation.
*/
func (resolver *Resolver) GetOrCreate(context context.Context, candidate *Card) (*Card, error) {
	if candidate.ID != "" {
		return candidate, nil
	}

	existing, err := resolver.lookup(context, candidate)
	if err == nil {
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	created := *candidate
	created.ID = uuid.New()

	if err := resolver.repo.Create(context, &created); err != nil {
		if !isConflict(err) {
			return nil, err
		}
		return resolver.lookup(context, candidate)
	}

	resolver.logger.InfoContext(context, "card_created",
		slog.String("card_id", created.ID),
		slog.String("name", created.Name),
	)

	return &created, nil
}

// lookup tries the Scryfall ID first and then the exact name.
func (resolver *Resolver) lookup(context context.Context, candidate *Card) (*Card, error) {
	if candidate.ScryfallID != nil && *candidate.ScryfallID != "" {
		found, err := resolver.repo.FindByScryfallID(context, *candidate.ScryfallID)
		if err == nil || !apperr.IsNotFound(err) {
			return found, err
		}
	}
	return resolver.repo.FindByName(context, candidate.Name)
}

func (resolver *Resolver) sourceError(context context.Context, err error, attrs ...any) error {
	if errors.Is(err, scryfall.ErrNotFound) {
		return apperr.NotFound("Card")
	}
	resolver.logger.WarnContext(context, "card_source_failed", append(attrs, slog.Any("error", err))...)
	return apperr.BadGateway("Card source is unavailable", err)
}

func isConflict(err error) bool {
	if dberr.IsUniqueViolation(err) {
		return true
	}
	appErr := apperr.As(err)
	return appErr != nil && appErr.HTTPStatus == http.StatusConflict
}
