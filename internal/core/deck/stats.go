// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/manabase/internal/core/card"
)

// typeSeparator divides supertypes and types from subtypes in a type line.
const typeSeparator = "—"

// priceKeyUSD is the key of the non-foil USD price in a card's price map.
const priceKeyUSD = "usd"

/*
Compute aggregates deck statistics from entries joined with their cards.

Every entry adds its quantity to each bucket it touches. Entries without a
card only count towards the zone totals.

Parameters:
  - entries: []*Entry (Card populated)

Returns:
  - *Stats: Buckets are never nil
*/
func Compute(entries []*Entry) *Stats {
	stats := &Stats{
		ColorDistribution:  map[string]int{},
		ManaCurve:          map[string]int{},
		CardTypes:          map[string]int{},
		RarityDistribution: map[string]int{},
		EstimatedValueUSD:  decimal.Zero,
	}

	for _, entry := range entries {
		quantity := entry.Quantity
		stats.TotalCards += quantity
		if entry.IsSideboard {
			stats.SideboardCount += quantity
		} else {
			stats.MainDeckCount += quantity
		}

		record := entry.Card
		if record == nil {
			continue
		}

		for _, color := range record.Colors {
			stats.ColorDistribution[color] += quantity
		}

		stats.ManaCurve[curveBucket(record.CMC)] += quantity

		if primary := PrimaryType(record.TypeLine); primary != "" {
			stats.CardTypes[primary] += quantity
		}

		if record.Rarity != "" {
			stats.RarityDistribution[record.Rarity] += quantity
		}

		if price, ok := priceUSD(record); ok {
			stats.EstimatedValueUSD = stats.EstimatedValueUSD.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		}
	}

	return stats
}

// PrimaryType returns the first word of a type line before its subtypes.
// "Legendary Creature — Human Wizard" yields "Legendary".
func PrimaryType(typeLine string) string {
	head, _, _ := strings.Cut(typeLine, typeSeparator)
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func curveBucket(cmc *int) string {
	if cmc == nil {
		return UnknownCMC
	}
	return strconv.Itoa(*cmc)
}

// priceUSD reads prices.usd, which Scryfall sends as a decimal string or null.
func priceUSD(record *card.Card) (decimal.Decimal, bool) {
	switch value := record.Prices()[priceKeyUSD].(type) {
	case string:
		price, err := decimal.NewFromString(value)
		return price, err == nil
	case float64:
		return decimal.NewFromFloat(value), true
	}
	return decimal.Zero, false
}
