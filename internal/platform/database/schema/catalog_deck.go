package schema

// CatalogDeckTable represents the 'catalog.deck' table
type CatalogDeckTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Format      string
	Tags        string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogDeck is the schema definition for catalog.deck
var CatalogDeck = CatalogDeckTable{
	Table:       "catalog.deck",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Format:      "format",
	Tags:        "tags",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogDeckTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Format, t.Tags, t.CreatedAt, t.UpdatedAt}
}
