// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/manabase/internal/core/filter"
	"github.com/taibuivan/manabase/internal/platform/database/schema"
	"github.com/taibuivan/manabase/internal/platform/dberr"
	"github.com/taibuivan/manabase/pkg/query"
	"github.com/taibuivan/manabase/pkg/slice"
)

const resourceCard = "Card"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed card store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Column maps a filter field to its catalog.card column.
func Column(field filter.Field) string {
	table := schema.CatalogCard
	switch field {
	case filter.FieldName:
		return table.Name
	case filter.FieldTypeLine:
		return table.TypeLine
	case filter.FieldColors:
		return table.Colors
	case filter.FieldRarity:
		return table.Rarity
	case filter.FieldCMC:
		return table.CMC
	case filter.FieldSetCode:
		return table.SetCode
	}
	panic("card: unmapped filter field " + string(field))
}

// selectColumns is the projection shared by every card query.
func selectColumns() string {
	return strings.Join(schema.CatalogCard.Columns(), ", ")
}

// QualifiedColumns is the card projection prefixed with a table alias, for
// queries that join catalog.card. Rows must be read with [Scan].
func QualifiedColumns(alias string) string {
	qualified := slice.Map(schema.CatalogCard.Columns(), func(column string) string {
		return alias + "." + column
	})
	return strings.Join(qualified, ", ")
}

// # Card Retrieval

/*
Search returns a filtered and paginated list of cards.

Description: Renders the predicate into the WHERE clause and reads the total
with COUNT(*) OVER(). When the requested page lies past the last match the
window is empty, so the total is read with a separate COUNT.

Parameters:
  - context: context.Context
  - predicate: filter.Predicate
  - limit: int
  - offset: int

Returns:
  - []*Card: Slice of matching cards
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Search(context context.Context, predicate filter.Predicate, limit, offset int) ([]*Card, int, error) {
	where, args := filter.SQL(predicate, Column, 1)
	if where != "" {
		where = " WHERE " + where
	}
	argID := len(args) + 1

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s%s`,
		selectColumns(), schema.CatalogCard.Table, where))
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d",
		schema.CatalogCard.Name, schema.CatalogCard.ID, argID, argID+1))

	rows, err := repository.db.Query(context, queryBuilder.String(), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceCard, "search_cards")
	}
	defer rows.Close()

	cards := []*Card{}
	var total int
	for rows.Next() {
		card, err := Scan(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceCard, "scan_card")
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceCard, "search_cards")
	}

	if len(cards) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.CatalogCard.Table, where)
		if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceCard, "count_cards")
		}
	}

	return cards, total, nil
}

// FindByID retrieves a card by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Card, error) {
	return repository.findOne(context, "get_card_by_id", schema.CatalogCard.ID+" = $1", id)
}

// FindByName retrieves a card by exact name. The oldest record wins when a
// name was stored more than once through manual creation.
func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Card, error) {
	return repository.findOne(context, "get_card_by_name", schema.CatalogCard.Name+" = $1", name)
}

// FindByScryfallID retrieves a card by its external identifier.
func (repository *PostgresRepository) FindByScryfallID(context context.Context, scryfallID string) (*Card, error) {
	return repository.findOne(context, "get_card_by_scryfall_id", schema.CatalogCard.ScryfallID+" = $1", scryfallID)
}

// FindByPrinting retrieves a card by set code and collector number.
func (repository *PostgresRepository) FindByPrinting(context context.Context, setCode, number string) (*Card, error) {
	condition := fmt.Sprintf("LOWER(%s) = LOWER($1) AND %s = $2", schema.CatalogCard.SetCode, schema.CatalogCard.CollectorNumber)
	return repository.findOne(context, "get_card_by_printing", condition, setCode, number)
}

func (repository *PostgresRepository) findOne(context context.Context, action, condition string, args ...any) (*Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC LIMIT 1`,
		selectColumns(), schema.CatalogCard.Table, condition, schema.CatalogCard.CreatedAt)

	card, err := Scan(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceCard, action)
	}
	return card, nil
}

/*
Autocomplete returns distinct card names with the given prefix.

Parameters:
  - context: context.Context
  - prefix: string (case-insensitive)
  - limit: int

Returns:
  - []string: Names in alphabetical order
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Autocomplete(context context.Context, prefix string, limit int) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s ILIKE $1 ORDER BY %s ASC LIMIT $2`,
		schema.CatalogCard.Name, schema.CatalogCard.Table, schema.CatalogCard.Name, schema.CatalogCard.Name)

	rows, err := repository.db.Query(context, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCard, "autocomplete_cards")
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, resourceCard, "scan_card_name")
		}
		names = append(names, name)
	}
	return names, dberr.Wrap(rows.Err(), resourceCard, "autocomplete_cards")
}

// # Card Mutation

// Create inserts a new card record.
func (repository *PostgresRepository) Create(context context.Context, card *Card) error {
	table := schema.CatalogCard
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.ScryfallID, table.Name, table.ManaCost, table.CMC, table.Colors, table.TypeLine,
		table.Rarity, table.SetCode, table.CollectorNumber, table.OracleText, table.ImageURI, table.AdditionalData,
		table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		card.ID, card.ScryfallID, card.Name, card.ManaCost, card.CMC, strings.Join(card.Colors, ","), card.TypeLine,
		card.Rarity, card.SetCode, card.CollectorNumber, card.OracleText, card.ImageURI, additionalData(card),
	).Scan(&card.CreatedAt, &card.UpdatedAt)

	return dberr.Wrap(err, resourceCard, "create_card")
}

// Update replaces the mutable fields of a card.
func (repository *PostgresRepository) Update(context context.Context, card *Card) error {
	table := schema.CatalogCard
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s`,
		table.Table,
		table.ScryfallID, table.Name, table.ManaCost, table.CMC, table.Colors, table.TypeLine,
		table.Rarity, table.SetCode, table.CollectorNumber, table.OracleText, table.ImageURI, table.AdditionalData, table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		card.ID, card.ScryfallID, card.Name, card.ManaCost, card.CMC, strings.Join(card.Colors, ","), card.TypeLine,
		card.Rarity, card.SetCode, card.CollectorNumber, card.OracleText, card.ImageURI, additionalData(card),
	).Scan(&card.CreatedAt, &card.UpdatedAt)

	return dberr.Wrap(err, resourceCard, "update_card")
}

// Delete removes a card. The deckcard foreign key rejects cards still in a deck.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogCard.Table, schema.CatalogCard.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceCard, "delete_card")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceCard, "delete_card")
	}
	return nil
}

// # Scanning

// Scan reads one card row in projection order, followed by any extra targets.
func Scan(row pgx.Row, extra ...any) (*Card, error) {
	card := &Card{}
	var colors string

	targets := []any{
		&card.ID, &card.ScryfallID, &card.Name, &card.ManaCost, &card.CMC, &colors, &card.TypeLine,
		&card.Rarity, &card.SetCode, &card.CollectorNumber, &card.OracleText, &card.ImageURI,
		&card.AdditionalData, &card.CreatedAt, &card.UpdatedAt,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	card.Colors = query.StringSlice(colors)
	if card.Colors == nil {
		card.Colors = []string{}
	}
	if card.AdditionalData == nil {
		card.AdditionalData = map[string]any{}
	}
	return card, nil
}

func additionalData(card *Card) map[string]any {
	if card.AdditionalData == nil {
		return map[string]any{}
	}
	return card.AdditionalData
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
