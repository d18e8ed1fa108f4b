// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/filter"
	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/scryfall"
)

func newService(repo *stubRepo, source *stubSource) *card.Service {
	return card.NewService(repo, newResolver(repo, source), discardLogger())
}

func TestService_Search_CombinesSimpleAndAdvanced(t *testing.T) {
	repo := &stubRepo{}
	advanced := filter.Group{Combinator: filter.Or, Children: []filter.Node{
		filter.Leaf{Field: filter.FieldRarity, Op: filter.OpIs, Value: "rare"},
		filter.Leaf{Field: filter.FieldCMC, Op: filter.OpGreaterThan, Value: "5"},
	}}

	params := card.SearchParams{Name: "dragon", Colors: "R,G", CMC: ptr(6), Advanced: advanced}
	_, _, err := newService(repo, &stubSource{}).Search(context.Background(), params, 20, 40)
	require.NoError(t, err)

	sql, args := filter.SQL(repo.lastPredicate, card.Column, 1)
	assert.Equal(t,
		"(name ILIKE $1 AND (colors ILIKE $2 AND colors ILIKE $3) AND cmc = $4 AND (LOWER(rarity) = LOWER($5) OR cmc > $6))",
		sql)
	assert.Equal(t, []any{"%dragon%", "%R%", "%G%", 6, "rare", 5}, args)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 40, repo.lastOffset)
}

func TestService_Search_NoCriteriaMatchesEverything(t *testing.T) {
	repo := &stubRepo{cards: []*card.Card{{ID: "1", Name: "Opt"}, {ID: "2", Name: "Shock"}}}

	cards, total, err := newService(repo, &stubSource{}).Search(context.Background(), card.SearchParams{Advanced: filter.Group{}}, 20, 0)
	require.NoError(t, err)

	assert.Nil(t, repo.lastPredicate)
	assert.Len(t, cards, 2)
	assert.Equal(t, 2, total)
}

func TestService_Search_TotalIgnoresPagination(t *testing.T) {
	repo := &stubRepo{cards: []*card.Card{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	cards, total, err := newService(repo, &stubSource{}).Search(context.Background(), card.SearchParams{}, 2, 4)
	require.NoError(t, err)

	assert.Empty(t, cards)
	assert.Equal(t, 3, total)
}

func TestService_Autocomplete(t *testing.T) {
	repo := &stubRepo{cards: []*card.Card{{Name: "Lightning Bolt"}, {Name: "Lightning Helix"}, {Name: "Opt"}}}
	service := newService(repo, &stubSource{})

	names, err := service.Autocomplete(context.Background(), "light", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lightning Bolt", "Lightning Helix"}, names)
	assert.Equal(t, card.DefaultAutocompleteLimit, repo.lastLimit)

	_, err = service.Autocomplete(context.Background(), "l", 500)
	require.NoError(t, err)
	assert.Equal(t, card.MaxAutocompleteLimit, repo.lastLimit)

	_, err = service.Autocomplete(context.Background(), "  ", 5)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_CreateCard_Validation(t *testing.T) {
	service := newService(&stubRepo{}, &stubSource{})

	err := service.CreateCard(context.Background(), &card.Card{Name: " ", ScryfallID: ptr("not-a-uuid"), CMC: ptr(-1)})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 3)
}

func TestService_CreateCard_BlankScryfallIDBecomesNil(t *testing.T) {
	repo := &stubRepo{}
	input := &card.Card{Name: "Custom Token", ScryfallID: ptr("")}

	require.NoError(t, newService(repo, &stubSource{}).CreateCard(context.Background(), input))

	assert.NotEmpty(t, input.ID)
	assert.Nil(t, input.ScryfallID)
	assert.Nil(t, input.CMC)
}

func TestService_GetCard_RejectsMalformedID(t *testing.T) {
	_, err := newService(&stubRepo{}, &stubSource{}).GetCard(context.Background(), "42")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_FetchByName(t *testing.T) {
	repo := &stubRepo{}
	source := &stubSource{cards: map[string]*scryfall.Card{"Delver of Secrets": delver()}}
	service := newService(repo, source)

	fetched, err := service.FetchByName(context.Background(), "Delver of Secrets")
	require.NoError(t, err)
	assert.NotEmpty(t, fetched.ID)

	again, err := service.FetchByName(context.Background(), "Delver of Secrets")
	require.NoError(t, err)
	assert.Equal(t, fetched.ID, again.ID)
	assert.Equal(t, 1, source.lookups)

	_, err = service.FetchByName(context.Background(), "Nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_FetchByPrinting(t *testing.T) {
	source := &stubSource{cards: map[string]*scryfall.Card{"isd/51": delver()}}
	service := newService(&stubRepo{}, source)

	fetched, err := service.FetchByPrinting(context.Background(), "isd", "51")
	require.NoError(t, err)
	assert.Equal(t, "51", fetched.CollectorNumber)

	_, err = service.FetchByPrinting(context.Background(), "", "51")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
