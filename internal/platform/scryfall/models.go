// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scryfall

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when Scryfall has no card for the lookup.
var ErrNotFound = errors.New("scryfall: card not found")

// Card is the subset of a Scryfall card object the catalog consumes.
type Card struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ManaCost        string         `json:"mana_cost,omitempty"`
	CMC             *float64       `json:"cmc,omitempty"`
	TypeLine        string         `json:"type_line"`
	OracleText      string         `json:"oracle_text,omitempty"`
	Colors          []string       `json:"colors,omitempty"`
	Keywords        []string       `json:"keywords,omitempty"`
	SetCode         string         `json:"set"`
	CollectorNumber string         `json:"collector_number"`
	Rarity          string         `json:"rarity"`
	ImageURIs       *ImageURIs     `json:"image_uris,omitempty"`
	CardFaces       []CardFace     `json:"card_faces,omitempty"`
	Legalities      map[string]any `json:"legalities,omitempty"`
	Prices          map[string]any `json:"prices,omitempty"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small  string `json:"small,omitempty"`
	Normal string `json:"normal,omitempty"`
	Large  string `json:"large,omitempty"`
	PNG    string `json:"png,omitempty"`
}

// Images returns the card's own images, falling back to the first face that has any.
func (c *Card) Images() *ImageURIs {
	if c.ImageURIs != nil {
		return c.ImageURIs
	}
	for i := range c.CardFaces {
		if c.CardFaces[i].ImageURIs != nil {
			return c.CardFaces[i].ImageURIs
		}
	}
	return nil
}

// APIError is the error object Scryfall returns on non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall: %s (HTTP %d): %s", e.Code, e.Status, e.Details)
}
