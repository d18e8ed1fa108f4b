// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/deck"
	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/pkg/uuid"
)

// stubRepo is a test-only in-memory implementation of deck.Repository.
type stubRepo struct {
	mu      sync.Mutex
	decks   []*deck.Deck
	entries []*deck.Entry

	// cards backs the card join of ListEntries.
	cards map[string]*card.Card

	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{cards: map[string]*card.Card{}}
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]*deck.Deck, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]*deck.Deck(nil), s.decks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	if offset >= len(sorted) {
		return []*deck.Deck{}, len(sorted), nil
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end], len(sorted), nil
}

func (s *stubRepo) FindByID(ctx context.Context, id string) (*deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.decks {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Deck")
}

func (s *stubRepo) Create(ctx context.Context, d *deck.Deck) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d.CreatedAt = time.Now().Add(time.Duration(len(s.decks)) * time.Millisecond)
	d.UpdatedAt = d.CreatedAt
	copied := *d
	s.decks = append(s.decks, &copied)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, d *deck.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.decks {
		if existing.ID == d.ID {
			copied := *d
			s.decks[i] = &copied
			return nil
		}
	}
	return apperr.NotFound("Deck")
}

func (s *stubRepo) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.decks {
		if existing.ID == id {
			s.decks = append(s.decks[:i], s.decks[i+1:]...)
			kept := s.entries[:0]
			for _, entry := range s.entries {
				if entry.DeckID != id {
					kept = append(kept, entry)
				}
			}
			s.entries = kept
			return nil
		}
	}
	return apperr.NotFound("Deck")
}

func (s *stubRepo) ListEntries(ctx context.Context, deckID string) ([]*deck.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []*deck.Entry{}
	for _, entry := range s.entries {
		if entry.DeckID == deckID {
			copied := *entry
			copied.Card = s.cards[entry.CardID]
			entries = append(entries, &copied)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsSideboard != entries[j].IsSideboard {
			return !entries[i].IsSideboard
		}
		return entries[i].Card != nil && entries[j].Card != nil && entries[i].Card.Name < entries[j].Card.Name
	})
	return entries, nil
}

func (s *stubRepo) AddCard(ctx context.Context, deckID, cardID string, quantity int, sideboard bool) (*deck.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsert(deckID, cardID, quantity, sideboard), nil
}

func (s *stubRepo) MoveCard(ctx context.Context, deckID, cardID string, fromSideboard bool, quantity int, toSideboard bool) (*deck.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(deckID, cardID, fromSideboard)
	if index < 0 {
		return nil, apperr.NotFound("Deck card")
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return s.upsert(deckID, cardID, quantity, toSideboard), nil
}

func (s *stubRepo) RemoveCard(ctx context.Context, deckID, cardID string, sideboard *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	kept := s.entries[:0]
	for _, entry := range s.entries {
		match := entry.DeckID == deckID && entry.CardID == cardID && (sideboard == nil || entry.IsSideboard == *sideboard)
		if match {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept

	if removed == 0 {
		return apperr.NotFound("Deck card")
	}
	return nil
}

func (s *stubRepo) indexOf(deckID, cardID string, sideboard bool) int {
	for i, entry := range s.entries {
		if entry.DeckID == deckID && entry.CardID == cardID && entry.IsSideboard == sideboard {
			return i
		}
	}
	return -1
}

func (s *stubRepo) upsert(deckID, cardID string, quantity int, sideboard bool) *deck.Entry {
	if index := s.indexOf(deckID, cardID, sideboard); index >= 0 {
		s.entries[index].Quantity += quantity
		copied := *s.entries[index]
		return &copied
	}

	entry := &deck.Entry{DeckID: deckID, CardID: cardID, Quantity: quantity, IsSideboard: sideboard, AddedAt: time.Now()}
	s.entries = append(s.entries, entry)
	copied := *entry
	return &copied
}

// entry returns the stored entry for a card name, or nil.
func (s *stubRepo) entry(deckID, name string, sideboard bool) *deck.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		c := s.cards[entry.CardID]
		if entry.DeckID == deckID && entry.IsSideboard == sideboard && c != nil && c.Name == name {
			return entry
		}
	}
	return nil
}

// stubResolver resolves names from a fixed catalog and stores cards in repo.cards.
type stubResolver struct {
	repo *stubRepo

	mu        sync.Mutex
	known     map[string]*card.Card
	printings map[string]*card.Card
	stored    map[string]*card.Card
	lookups   []string

	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func newStubResolver(repo *stubRepo, names ...string) *stubResolver {
	resolver := &stubResolver{
		repo:      repo,
		known:     map[string]*card.Card{},
		printings: map[string]*card.Card{},
		stored:    map[string]*card.Card{},
	}
	for _, name := range names {
		resolver.known[name] = &card.Card{Name: name, Colors: []string{}}
	}
	return resolver
}

func (s *stubResolver) track() func() {
	current := s.inFlight.Add(1)
	for {
		peak := s.peak.Load()
		if current <= peak || s.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return func() { s.inFlight.Add(-1) }
}

func (s *stubResolver) Resolve(ctx context.Context, name string) (*card.Card, error) {
	defer s.track()()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, name)

	if c, ok := s.known[name]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Card")
}

func (s *stubResolver) ResolvePrinting(ctx context.Context, setCode, number string) (*card.Card, error) {
	defer s.track()()

	s.mu.Lock()
	defer s.mu.Unlock()
	key := setCode + "/" + number
	s.lookups = append(s.lookups, key)

	if c, ok := s.printings[key]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Card")
}

func (s *stubResolver) GetOrCreate(ctx context.Context, candidate *card.Card) (*card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.stored[candidate.Name]; ok {
		return stored, nil
	}

	created := *candidate
	created.ID = uuid.New()
	s.stored[created.Name] = &created

	s.repo.mu.Lock()
	s.repo.cards[created.ID] = &created
	s.repo.mu.Unlock()
	return &created, nil
}

// stubReceipts is an in-memory deck.ReceiptStore.
type stubReceipts struct {
	mu       sync.Mutex
	receipts map[string]*deck.ImportResult
	saveErr  error
}

func newStubReceipts() *stubReceipts {
	return &stubReceipts{receipts: map[string]*deck.ImportResult{}}
}

func (s *stubReceipts) Save(ctx context.Context, result *deck.ImportResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[result.DeckID] = result
	return nil
}

func (s *stubReceipts) Load(ctx context.Context, deckID string) (*deck.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result, ok := s.receipts[deckID]; ok {
		return result, nil
	}
	return nil, apperr.NotFound("Import receipt")
}

var errStorage = errors.New("storage unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](value T) *T {
	return &value
}
