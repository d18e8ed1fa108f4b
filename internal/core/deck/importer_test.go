// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/deck"
	"github.com/taibuivan/manabase/internal/platform/apperr"
)

const sampleList = `4 Island
2 Nonexistent Card
4 Counterspell

2 Duress
1 Island`

func newImporter(repo *stubRepo, resolver *stubResolver, receipts deck.ReceiptStore) *deck.Importer {
	return deck.NewImporter(repo, resolver, receipts, 4, discardLogger())
}

func TestImport_UnresolvableCardIsExcluded(t *testing.T) {
	repo := newStubRepo()
	resolver := newStubResolver(repo, "Island", "Counterspell", "Duress")
	importer := newImporter(repo, resolver, nil)

	result, err := importer.Import(context.Background(), deck.ImportRequest{
		DeckText: sampleList,
		Name:     "  Mono Blue  ",
		Format:   ptr("modern"),
		Tags:     deck.TagList{"control", "budget"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.DeckID)
	assert.Equal(t, "Mono Blue", result.Name)
	assert.Equal(t, 10, result.MainDeckCount)
	assert.Equal(t, 3, result.SideboardCount)
	assert.Equal(t, 3, result.UniqueCards)
	assert.Equal(t, []string{"Nonexistent Card"}, result.Unresolved)

	stored, err := repo.FindByID(context.Background(), result.DeckID)
	require.NoError(t, err)
	assert.Equal(t, deck.TagList{"control", "budget"}, stored.Tags)
	assert.Equal(t, "modern", *stored.Format)

	require.NotNil(t, repo.entry(result.DeckID, "Island", false))
	assert.Equal(t, 4, repo.entry(result.DeckID, "Island", false).Quantity)
	assert.Equal(t, 4, repo.entry(result.DeckID, "Counterspell", false).Quantity)
	assert.Equal(t, 2, repo.entry(result.DeckID, "Duress", true).Quantity)
	assert.Equal(t, 1, repo.entry(result.DeckID, "Island", true).Quantity)
	assert.Nil(t, repo.entry(result.DeckID, "Nonexistent Card", false))

	entries, err := repo.ListEntries(context.Background(), result.DeckID)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestImport_RepeatedLinesMergeInOneZone(t *testing.T) {
	repo := newStubRepo()
	importer := newImporter(repo, newStubResolver(repo, "Island"), nil)

	result, err := importer.Import(context.Background(), deck.ImportRequest{
		DeckText: "2 Island\n3 Island",
		Name:     "Islands",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.MainDeckCount)
	assert.Equal(t, 1, result.UniqueCards)
	assert.Equal(t, 5, repo.entry(result.DeckID, "Island", false).Quantity)
}

func TestImport_DeckCreationFailureAborts(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = apperr.Internal(errStorage)
	resolver := newStubResolver(repo, "Island")
	importer := newImporter(repo, resolver, nil)

	result, err := importer.Import(context.Background(), deck.ImportRequest{DeckText: "4 Island", Name: "Broken"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	assert.Empty(t, repo.entries)
	assert.Empty(t, resolver.stored)
}

func TestImport_SameTextTwiceCreatesTwoDecks(t *testing.T) {
	repo := newStubRepo()
	resolver := newStubResolver(repo, "Island", "Counterspell", "Duress")
	importer := newImporter(repo, resolver, nil)
	request := deck.ImportRequest{DeckText: sampleList, Name: "Twice"}

	first, err := importer.Import(context.Background(), request)
	require.NoError(t, err)
	second, err := importer.Import(context.Background(), request)
	require.NoError(t, err)

	assert.NotEqual(t, first.DeckID, second.DeckID)
	assert.Len(t, repo.decks, 2)
	assert.Len(t, resolver.stored, 3, "cards are shared between the two decks")
	assert.Equal(t,
		repo.entry(first.DeckID, "Island", false).CardID,
		repo.entry(second.DeckID, "Island", false).CardID,
	)
}

func TestImport_PrintingHint(t *testing.T) {
	repo := newStubRepo()
	resolver := newStubResolver(repo, "Shock", "Opt")
	resolver.printings["m21/159"] = &card.Card{Name: "Shock", SetCode: "m21", CollectorNumber: "159"}
	importer := newImporter(repo, resolver, nil)

	result, err := importer.Import(context.Background(), deck.ImportRequest{
		DeckText: "4 Shock (M21) 159\n4 Opt (XLN) 999",
		Name:     "Arena export",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.UniqueCards)
	assert.Empty(t, result.Unresolved)

	shock := resolver.stored["Shock"]
	require.NotNil(t, shock)
	assert.Equal(t, "m21", shock.SetCode)

	assert.Contains(t, resolver.lookups, "m21/159")
	assert.Contains(t, resolver.lookups, "xln/999")
	assert.Contains(t, resolver.lookups, "Opt", "an unknown printing falls back to the name")
	assert.NotContains(t, resolver.lookups, "Shock")
}

func TestImport_BoundedConcurrency(t *testing.T) {
	repo := newStubRepo()
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	resolver := newStubResolver(repo, names...)
	resolver.delay = 10 * time.Millisecond
	importer := deck.NewImporter(repo, resolver, nil, 2, discardLogger())

	text := ""
	for _, name := range names {
		text += "1 " + name + "\n"
	}

	result, err := importer.Import(context.Background(), deck.ImportRequest{DeckText: text, Name: "Wide"})
	require.NoError(t, err)

	assert.Equal(t, 8, result.UniqueCards)
	assert.LessOrEqual(t, resolver.peak.Load(), int32(2))
	assert.Len(t, resolver.lookups, 8)
}

func TestImport_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		request deck.ImportRequest
		status  int
	}{
		{"missing name", deck.ImportRequest{DeckText: "4 Island"}, http.StatusBadRequest},
		{"missing text", deck.ImportRequest{Name: "Empty"}, http.StatusBadRequest},
		{"no card lines", deck.ImportRequest{DeckText: "Deck\nSideboard", Name: "Headers"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			importer := newImporter(repo, newStubResolver(repo, "Island"), nil)

			_, err := importer.Import(context.Background(), tt.request)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Empty(t, repo.decks)
		})
	}
}

func TestImport_Receipts(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		repo := newStubRepo()
		receipts := newStubReceipts()
		importer := newImporter(repo, newStubResolver(repo, "Island"), receipts)

		result, err := importer.Import(context.Background(), deck.ImportRequest{DeckText: "4 Island\n1 Nope", Name: "R"})
		require.NoError(t, err)

		receipt, err := receipts.Load(context.Background(), result.DeckID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Nope"}, receipt.Unresolved)
	})

	t.Run("write failure is not fatal", func(t *testing.T) {
		repo := newStubRepo()
		receipts := newStubReceipts()
		receipts.saveErr = errStorage
		importer := newImporter(repo, newStubResolver(repo, "Island"), receipts)

		result, err := importer.Import(context.Background(), deck.ImportRequest{DeckText: "4 Island", Name: "R"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.DeckID)
	})
}
