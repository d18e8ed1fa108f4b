// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/filter"
	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/scryfall"
)

// stubRepo is a test-only in-memory implementation of card.Repository.
type stubRepo struct {
	mu    sync.Mutex
	cards []*card.Card

	// beforeCreate runs inside Create before the duplicate check.
	beforeCreate func()
	creates      int

	lastPredicate filter.Predicate
	lastLimit     int
	lastOffset    int
}

func (s *stubRepo) Search(ctx context.Context, predicate filter.Predicate, limit, offset int) ([]*card.Card, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPredicate, s.lastLimit, s.lastOffset = predicate, limit, offset

	if offset >= len(s.cards) {
		return []*card.Card{}, len(s.cards), nil
	}
	end := min(offset+limit, len(s.cards))
	return s.cards[offset:end], len(s.cards), nil
}

func (s *stubRepo) find(match func(*card.Card) bool) (*card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if match(c) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Card")
}

func (s *stubRepo) FindByID(ctx context.Context, id string) (*card.Card, error) {
	return s.find(func(c *card.Card) bool { return c.ID == id })
}

func (s *stubRepo) FindByName(ctx context.Context, name string) (*card.Card, error) {
	return s.find(func(c *card.Card) bool { return c.Name == name })
}

func (s *stubRepo) FindByScryfallID(ctx context.Context, scryfallID string) (*card.Card, error) {
	return s.find(func(c *card.Card) bool { return c.ScryfallID != nil && *c.ScryfallID == scryfallID })
}

func (s *stubRepo) FindByPrinting(ctx context.Context, setCode, number string) (*card.Card, error) {
	return s.find(func(c *card.Card) bool {
		return strings.EqualFold(c.SetCode, setCode) && c.CollectorNumber == number
	})
}

func (s *stubRepo) Create(ctx context.Context, c *card.Card) error {
	if s.beforeCreate != nil {
		s.beforeCreate()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++

	for _, existing := range s.cards {
		if c.ScryfallID != nil && existing.ScryfallID != nil && *existing.ScryfallID == *c.ScryfallID {
			return apperr.Conflict("Card already exists")
		}
	}
	copied := *c
	s.cards = append(s.cards, &copied)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, c *card.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.cards {
		if existing.ID == c.ID {
			copied := *c
			s.cards[i] = &copied
			return nil
		}
	}
	return apperr.NotFound("Card")
}

func (s *stubRepo) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.cards {
		if existing.ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Card")
}

func (s *stubRepo) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit

	var names []string
	for _, c := range s.cards {
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix)) && len(names) < limit {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

// stubSource serves canned Scryfall cards keyed by name or "set/number".
type stubSource struct {
	mu      sync.Mutex
	cards   map[string]*scryfall.Card
	err     error
	lookups int
}

func (s *stubSource) CardByName(ctx context.Context, name string) (*scryfall.Card, error) {
	return s.get(name)
}

func (s *stubSource) CardBySetNumber(ctx context.Context, setCode, number string) (*scryfall.Card, error) {
	return s.get(setCode + "/" + number)
}

func (s *stubSource) get(key string) (*scryfall.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.cards[key]; ok {
		return c, nil
	}
	return nil, scryfall.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](value T) *T {
	return &value
}
