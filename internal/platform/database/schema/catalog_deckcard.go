package schema

// CatalogDeckCardTable represents the 'catalog.deckcard' table
type CatalogDeckCardTable struct {
	Table       string
	DeckID      string
	CardID      string
	Quantity    string
	IsSideboard string
	AddedAt     string
}

// CatalogDeckCard is the schema definition for catalog.deckcard
var CatalogDeckCard = CatalogDeckCardTable{
	Table:       "catalog.deckcard",
	DeckID:      "deckid",
	CardID:      "cardid",
	Quantity:    "quantity",
	IsSideboard: "issideboard",
	AddedAt:     "addedat",
}

func (t CatalogDeckCardTable) Columns() []string {
	return []string{t.DeckID, t.CardID, t.Quantity, t.IsSideboard, t.AddedAt}
}
