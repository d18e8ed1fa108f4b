// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"strings"

	"github.com/taibuivan/manabase/internal/platform/scryfall"
	"github.com/taibuivan/manabase/pkg/pointer"
	"github.com/taibuivan/manabase/pkg/slice"
)

/*
FromExternal maps a Scryfall card into an unsaved catalog [Card].

  - Colors keep Scryfall's symbol order.
  - The image is the largest rendition available: large, normal, small, png.
  - Mana value is truncated to an integer and defaults to zero.
  - Keywords, legalities and prices are passed through as auxiliary data.
*/
func FromExternal(external *scryfall.Card) *Card {
	cmc := int(pointer.Fallback(external.CMC, 0))

	colors := external.Colors
	if len(colors) == 0 && len(external.CardFaces) > 0 {
		colors = faceColors(external.CardFaces)
	}

	keywords := external.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	legalities := external.Legalities
	if legalities == nil {
		legalities = map[string]any{}
	}
	prices := external.Prices
	if prices == nil {
		prices = map[string]any{}
	}

	card := &Card{
		Name:            external.Name,
		ManaCost:        external.ManaCost,
		CMC:             &cmc,
		Colors:          append([]string{}, colors...),
		TypeLine:        external.TypeLine,
		Rarity:          external.Rarity,
		SetCode:         external.SetCode,
		CollectorNumber: external.CollectorNumber,
		OracleText:      external.OracleText,
		ImageURI:        preferredImage(external.Images()),
		AdditionalData: map[string]any{
			DataKeywords:   keywords,
			DataLegalities: legalities,
			DataPrices:     prices,
		},
	}

	if external.ID != "" {
		card.ScryfallID = pointer.To(external.ID)
	}

	// Double-faced cards keep their rules text on the faces.
	if card.OracleText == "" && len(external.CardFaces) > 0 {
		texts := slice.Map(external.CardFaces, func(face scryfall.CardFace) string { return face.OracleText })
		texts = slice.Filter(texts, func(text string) bool { return text != "" })
		card.OracleText = strings.Join(texts, "\n//\n")
	}
	if card.ManaCost == "" && len(external.CardFaces) > 0 {
		card.ManaCost = external.CardFaces[0].ManaCost
	}

	return card
}

func preferredImage(images *scryfall.ImageURIs) string {
	if images == nil {
		return ""
	}
	for _, uri := range []string{images.Large, images.Normal, images.Small, images.PNG} {
		if uri != "" {
			return uri
		}
	}
	return ""
}

// faceColors unions face colors in first-seen order.
func faceColors(faces []scryfall.CardFace) []string {
	seen := map[string]bool{}
	var colors []string
	for _, face := range faces {
		for _, color := range face.Colors {
			if !seen[color] {
				seen[color] = true
				colors = append(colors, color)
			}
		}
	}
	return colors
}
