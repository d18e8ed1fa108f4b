package schema

// CatalogCardTable represents the 'catalog.card' table
type CatalogCardTable struct {
	Table           string
	ID              string
	ScryfallID      string
	Name            string
	ManaCost        string
	CMC             string
	Colors          string
	TypeLine        string
	Rarity          string
	SetCode         string
	CollectorNumber string
	OracleText      string
	ImageURI        string
	AdditionalData  string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogCard is the schema definition for catalog.card
var CatalogCard = CatalogCardTable{
	Table:           "catalog.card",
	ID:              "id",
	ScryfallID:      "scryfallid",
	Name:            "name",
	ManaCost:        "manacost",
	CMC:             "cmc",
	Colors:          "colors",
	TypeLine:        "typeline",
	Rarity:          "rarity",
	SetCode:         "setcode",
	CollectorNumber: "collectornumber",
	OracleText:      "oracletext",
	ImageURI:        "imageuri",
	AdditionalData:  "additionaldata",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t CatalogCardTable) Columns() []string {
	return []string{
		t.ID, t.ScryfallID, t.Name, t.ManaCost, t.CMC, t.Colors, t.TypeLine, t.Rarity,
		t.SetCode, t.CollectorNumber, t.OracleText, t.ImageURI, t.AdditionalData, t.CreatedAt, t.UpdatedAt,
	}
}
