// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/platform/apperr"
	"github.com/taibuivan/manabase/internal/platform/database/schema"
	"github.com/taibuivan/manabase/internal/platform/dberr"
)

const (
	resourceDeck  = "Deck"
	resourceEntry = "Deck card"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed deck store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func deckColumns() string {
	return strings.Join(schema.CatalogDeck.Columns(), ", ")
}

func entryColumns() string {
	return strings.Join(schema.CatalogDeckCard.Columns(), ", ")
}

// # Deck Retrieval

/*
List returns a page of decks ordered by creation time, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Deck: Slice of decks
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Deck, int, error) {
	table := schema.CatalogDeck
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		deckColumns(), table.Table, table.CreatedAt, table.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceDeck, "list_decks")
	}
	defer rows.Close()

	decks := []*Deck{}
	var total int
	for rows.Next() {
		deck, err := scanDeck(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceDeck, "scan_deck")
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceDeck, "list_decks")
	}

	if len(decks) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table.Table)
		if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceDeck, "count_decks")
		}
	}

	return decks, total, nil
}

// FindByID retrieves a deck by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Deck, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		deckColumns(), schema.CatalogDeck.Table, schema.CatalogDeck.ID)

	deck, err := scanDeck(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceDeck, "get_deck_by_id")
	}
	return deck, nil
}

// # Deck Mutation

// Create inserts a new deck record.
func (repository *PostgresRepository) Create(context context.Context, deck *Deck) error {
	table := schema.CatalogDeck
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.Description, table.Format, table.Tags, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		deck.ID, deck.Name, deck.Description, deck.Format, deck.Tags.String(),
	).Scan(&deck.CreatedAt, &deck.UpdatedAt)

	return dberr.Wrap(err, resourceDeck, "create_deck")
}

// Update replaces the metadata of a deck.
func (repository *PostgresRepository) Update(context context.Context, deck *Deck) error {
	table := schema.CatalogDeck
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s`,
		table.Table,
		table.Name, table.Description, table.Format, table.Tags, table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		deck.ID, deck.Name, deck.Description, deck.Format, deck.Tags.String(),
	).Scan(&deck.CreatedAt, &deck.UpdatedAt)

	return dberr.Wrap(err, resourceDeck, "update_deck")
}

// Delete removes a deck. Entries are removed by the ON DELETE CASCADE constraint.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogDeck.Table, schema.CatalogDeck.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceDeck, "delete_deck")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceDeck)
	}
	return nil
}

// # Entries

/*
ListEntries returns the entries of a deck joined with their cards.

Description: Main deck entries come first, each zone ordered by card name.

Parameters:
  - context: context.Context
  - deckID: string

Returns:
  - []*Entry: Entries with Card populated
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListEntries(context context.Context, deckID string) ([]*Entry, error) {
	entryTable := schema.CatalogDeckCard
	cardTable := schema.CatalogCard

	query := fmt.Sprintf(`
		SELECT %s, e.%s, e.%s, e.%s
		FROM %s e
		JOIN %s c ON c.%s = e.%s
		WHERE e.%s = $1
		ORDER BY e.%s ASC, c.%s ASC`,
		card.QualifiedColumns("c"), entryTable.Quantity, entryTable.IsSideboard, entryTable.AddedAt,
		entryTable.Table,
		cardTable.Table, cardTable.ID, entryTable.CardID,
		entryTable.DeckID,
		entryTable.IsSideboard, cardTable.Name,
	)

	rows, err := repository.pool.Query(context, query, deckID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceEntry, "list_deck_entries")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry := &Entry{DeckID: deckID}
		cardRecord, err := card.Scan(rows, &entry.Quantity, &entry.IsSideboard, &entry.AddedAt)
		if err != nil {
			return nil, dberr.Wrap(err, resourceEntry, "scan_deck_entry")
		}
		entry.CardID = cardRecord.ID
		entry.Card = cardRecord
		entries = append(entries, entry)
	}
	return entries, dberr.Wrap(rows.Err(), resourceEntry, "list_deck_entries")
}

/*
AddCard upserts an entry, summing quantities on the (deck, card, zone) key.

Parameters:
  - context: context.Context
  - deckID, cardID: string
  - quantity: int (positive)
  - sideboard: bool

Returns:
  - *Entry: The merged entry
  - error: NotFound when the deck or card does not exist
*/
func (repository *PostgresRepository) AddCard(context context.Context, deckID, cardID string, quantity int, sideboard bool) (*Entry, error) {
	entry, err := upsertEntry(context, repository.pool, deckID, cardID, quantity, sideboard, time.Now())
	if err != nil {
		return nil, entryError(err, "add_deck_card")
	}
	return entry, nil
}

/*
MoveCard rewrites one entry inside a transaction.

Description: The source entry is deleted and its quantity re-inserted into
the target zone through the same upsert as [PostgresRepository.AddCard], so
a target zone already holding the card absorbs the moved copies. The
original added-at time is kept.
*/
func (repository *PostgresRepository) MoveCard(context context.Context, deckID, cardID string, fromSideboard bool, quantity int, toSideboard bool) (*Entry, error) {
	table := schema.CatalogDeckCard

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, resourceEntry, "begin_move_deck_card")
	}
	defer transaction.Rollback(context)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		RETURNING %s`,
		table.Table,
		table.DeckID, table.CardID, table.IsSideboard,
		table.AddedAt,
	)

	var addedAt time.Time
	if err := transaction.QueryRow(context, deleteQuery, deckID, cardID, fromSideboard).Scan(&addedAt); err != nil {
		return nil, dberr.Wrap(err, resourceEntry, "move_deck_card")
	}

	entry, err := upsertEntry(context, transaction, deckID, cardID, quantity, toSideboard, addedAt)
	if err != nil {
		return nil, entryError(err, "move_deck_card")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, resourceEntry, "commit_move_deck_card")
	}
	return entry, nil
}

// RemoveCard deletes entries of a card from one zone or both.
func (repository *PostgresRepository) RemoveCard(context context.Context, deckID, cardID string, sideboard *bool) error {
	table := schema.CatalogDeckCard
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.DeckID, table.CardID)
	args := []any{deckID, cardID}

	if sideboard != nil {
		query += fmt.Sprintf(" AND %s = $3", table.IsSideboard)
		args = append(args, *sideboard)
	}

	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, resourceEntry, "remove_deck_card")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceEntry)
	}
	return nil
}

// # Helpers

// queryRower is satisfied by both the pool and a transaction.
type queryRower interface {
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
}

func upsertEntry(context context.Context, db queryRower, deckID, cardID string, quantity int, sideboard bool, addedAt time.Time) (*Entry, error) {
	table := schema.CatalogDeckCard
	query := fmt.Sprintf(`
		INSERT INTO %s AS entry (%s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s, %s)
		DO UPDATE SET %s = entry.%s + EXCLUDED.%s
		RETURNING %s`,
		table.Table, entryColumns(),
		table.DeckID, table.CardID, table.IsSideboard,
		table.Quantity, table.Quantity, table.Quantity,
		entryColumns(),
	)

	entry := &Entry{}
	err := db.QueryRow(context, query, deckID, cardID, quantity, sideboard, addedAt).
		Scan(&entry.DeckID, &entry.CardID, &entry.Quantity, &entry.IsSideboard, &entry.AddedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// entryError reports a dangling deck or card reference as NotFound.
func entryError(err error, action string) error {
	if dberr.IsForeignKeyViolation(err) {
		return apperr.NotFound("Deck or card").WithCause(err)
	}
	return dberr.Wrap(err, resourceEntry, action)
}

// # Scanning

func scanDeck(row pgx.Row, extra ...any) (*Deck, error) {
	deck := &Deck{}
	var tags string

	targets := []any{
		&deck.ID, &deck.Name, &deck.Description, &deck.Format, &tags, &deck.CreatedAt, &deck.UpdatedAt,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	deck.Tags = ParseTags(tags)
	return deck, nil
}
