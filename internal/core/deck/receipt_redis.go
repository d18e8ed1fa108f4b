// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/manabase/internal/platform/apperr"
)

const receiptKeyPrefix = "deck:import:"

// RedisReceiptStore implements [ReceiptStore] using Redis.
type RedisReceiptStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReceiptStore creates a Redis-backed [ReceiptStore] whose entries expire after ttl.
func NewRedisReceiptStore(client *redis.Client, ttl time.Duration) *RedisReceiptStore {
	return &RedisReceiptStore{client: client, ttl: ttl}
}

/*
Save stores an import result as JSON under deck:import:<deck id>.

Parameters:
  - context: context.Context
  - result: *ImportResult

Returns:
  - error: Encoding or connectivity errors
*/
func (store *RedisReceiptStore) Save(context context.Context, result *ImportResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis_import_receipt_encode_failed: %w", err)
	}

	if err := store.client.Set(context, receiptKeyPrefix+result.DeckID, payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_import_receipt_set_failed: %w", err)
	}
	return nil
}

/*
Load retrieves the import result of a deck.

Returns:
  - *ImportResult: The stored receipt
  - error: apperr.NotFound if the receipt is absent or expired
*/
func (store *RedisReceiptStore) Load(context context.Context, deckID string) (*ImportResult, error) {
	payload, err := store.client.Get(context, receiptKeyPrefix+deckID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Import receipt")
		}
		return nil, fmt.Errorf("redis_import_receipt_get_failed: %w", err)
	}

	var result ImportResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("redis_import_receipt_decode_failed: %w", err)
	}
	return &result, nil
}
