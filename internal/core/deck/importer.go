// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/decklist"
	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/validate"
	"github.com/taibuivan/manabase/pkg/uuid"
)

// DefaultImportConcurrency bounds card lookups when no limit is configured.
const DefaultImportConcurrency = 8

// CardResolver turns card references into catalog records. [card.Resolver]
// satisfies it.
type CardResolver interface {
	Resolve(context context.Context, name string) (*card.Card, error)
	ResolvePrinting(context context.Context, setCode, number string) (*card.Card, error)
	GetOrCreate(context context.Context, candidate *card.Card) (*card.Card, error)
}

// Importer creates decks from plain-text deck lists.
type Importer struct {
	repo        Repository
	resolver    CardResolver
	receipts    ReceiptStore
	concurrency int
	logger      *slog.Logger
}

/*
NewImporter constructs an [Importer].

Parameters:
  - repo: Repository
  - resolver: CardResolver
  - receipts: ReceiptStore (nil disables import receipts)
  - concurrency: int (maximum simultaneous card lookups)
  - logger: *slog.Logger
*/
func NewImporter(repo Repository, resolver CardResolver, receipts ReceiptStore, concurrency int, logger *slog.Logger) *Importer {
	if concurrency < 1 {
		concurrency = DefaultImportConcurrency
	}
	return &Importer{
		repo:        repo,
		resolver:    resolver,
		receipts:    receipts,
		concurrency: concurrency,
		logger:      logger,
	}
}

/*
Import parses a deck list and stores it as a new deck.

Description: Every distinct name is resolved concurrently. Names that fail
to resolve are left out of the deck and reported in Unresolved; they never
fail the import. The deck is created once resolution has finished, then each
resolved entry is attached in list order, main deck first. Entries commit
one by one, so an interrupted import may leave a partial deck. Importing the
same text twice creates two decks.

Parameters:
  - context: context.Context
  - request: ImportRequest

Returns:
  - *ImportResult: Counts over the parsed list and the new deck id
  - error: Validation, Unprocessable for a list without card lines, or the
    cause of a failed deck creation
*/
func (importer *Importer) Import(context context.Context, request ImportRequest) (*ImportResult, error) {
	request.Name = strings.TrimSpace(request.Name)

	validator := &validate.Validator{}
	validator.Required(FieldDeckText, strings.TrimSpace(request.DeckText))
	validateMetadata(validator, request.Name, request.Description, request.Format, request.Tags)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	list := decklist.Parse(request.DeckText)
	if list.Empty() {
		return nil, apperr.Unprocessable("Deck list contains no card lines")
	}

	resolved, unresolved := importer.resolveAll(context, list)

	deck := &Deck{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		Format:      request.Format,
		Tags:        request.Tags,
	}
	if deck.Tags == nil {
		deck.Tags = TagList{}
	}

	if err := importer.repo.Create(context, deck); err != nil {
		return nil, err
	}

	stored := make(map[string]*card.Card, len(resolved))
	for _, zone := range []struct {
		entries   []decklist.Entry
		sideboard bool
	}{
		{list.Main, false},
		{list.Sideboard, true},
	} {
		for _, entry := range zone.entries {
			candidate, ok := resolved[entry.Name]
			if !ok {
				continue
			}

			record, ok := stored[entry.Name]
			if !ok {
				var err error
				if record, err = importer.resolver.GetOrCreate(context, candidate); err != nil {
					return nil, err
				}
				stored[entry.Name] = record
			}

			if _, err := importer.repo.AddCard(context, deck.ID, record.ID, entry.Quantity, zone.sideboard); err != nil {
				return nil, err
			}
		}
	}

	result := &ImportResult{
		DeckID:         deck.ID,
		Name:           deck.Name,
		MainDeckCount:  list.MainCount(),
		SideboardCount: list.SideboardCount(),
		UniqueCards:    len(resolved),
		Unresolved:     unresolved,
		ImportedAt:     time.Now().UTC(),
	}

	importer.logger.InfoContext(context, "deck_imported",
		slog.String("deck_id", result.DeckID),
		slog.Int("main_deck_count", result.MainDeckCount),
		slog.Int("sideboard_count", result.SideboardCount),
		slog.Int("unique_cards", result.UniqueCards),
		slog.Int("unresolved", len(result.Unresolved)),
	)

	if importer.receipts != nil {
		if err := importer.receipts.Save(context, result); err != nil {
			importer.logger.WarnContext(context, "import_receipt_failed",
				slog.String("deck_id", result.DeckID),
				slog.Any("error", err),
			)
		}
	}

	return result, nil
}

/*
resolveAll resolves every distinct name of the list with at most
importer.concurrency lookups in flight. A failed lookup only affects its
own name.

Returns:
  - map[string]*card.Card: Candidates keyed by normalised name
  - []string: Names that could not be resolved, in list order
*/
func (importer *Importer) resolveAll(context context.Context, list decklist.List) (map[string]*card.Card, []string) {
	names := list.Names()
	printings := list.Printings()
	candidates := make([]*card.Card, len(names))

	var group errgroup.Group
	group.SetLimit(importer.concurrency)

	for i, name := range names {
		group.Go(func() error {
			candidates[i] = importer.resolveOne(context, name, printings)
			return nil
		})
	}
	_ = group.Wait()

	resolved := make(map[string]*card.Card, len(names))
	unresolved := []string{}
	for i, name := range names {
		if candidates[i] == nil {
			unresolved = append(unresolved, name)
			continue
		}
		resolved[name] = candidates[i]
	}
	return resolved, unresolved
}

// resolveOne prefers the printing hint and falls back to the exact name.
func (importer *Importer) resolveOne(context context.Context, name string, printings map[string]decklist.Printing) *card.Card {
	if printing, ok := printings[name]; ok {
		candidate, err := importer.resolver.ResolvePrinting(context, printing.SetCode, printing.Number)
		if err == nil {
			return candidate
		}
		importer.logger.DebugContext(context, "card_printing_unresolved",
			slog.String("name", name),
			slog.String("set_code", printing.SetCode),
			slog.String("collector_number", printing.Number),
			slog.Any("error", err),
		)
	}

	candidate, err := importer.resolver.Resolve(context, name)
	if err != nil {
		importer.logger.WarnContext(context, "card_resolution_failed",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return nil
	}
	return candidate
}
