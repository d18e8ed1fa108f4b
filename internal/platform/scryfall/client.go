// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scryfall is a throttled HTTP client for the Scryfall card database.

Every call waits on a token bucket before hitting the network and retries
network errors, HTTP 429 and 5xx responses with exponential backoff. A 404 is
reported as [ErrNotFound] and never retried.
*/
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/manabase/internal/platform/config"
)

const (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

// Client talks to the Scryfall REST API.
type Client struct {
	baseURL     string
	userAgent   string
	maxRetries  int
	backoff     time.Duration
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.ScryfallConfig, logger *slog.Logger) *Client {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		backoff:     initialBackoff,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:      logger,
	}
}

// WithBackoff overrides the initial retry delay. Used by tests.
func (c *Client) WithBackoff(backoff time.Duration) *Client {
	c.backoff = backoff
	return c
}

// CardByName fetches a card by its exact English name.
func (c *Client) CardByName(ctx context.Context, name string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("lookup card %q: %w", name, err)
	}
	return &card, nil
}

// CardBySetNumber fetches a specific printing by set code and collector number.
func (c *Client) CardBySetNumber(ctx context.Context, setCode, number string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(setCode), url.PathEscape(number))

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("lookup printing %s/%s: %w", setCode, number, err)
	}
	return &card, nil
}

// doRequest performs a GET with throttling and retries, decoding a 200 body into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.DebugContext(ctx, "scryfall_retry",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
				slog.Any("error", lastErr),
			)
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = min(backoff*2, maxBackoff)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		retry, err := c.attempt(ctx, endpoint, result)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// attempt performs one round trip. The boolean reports whether the failure is retryable.
func (c *Client) attempt(ctx context.Context, endpoint string, result any) (bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusOK:
		if err := json.NewDecoder(response.Body).Decode(result); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
		return false, nil

	case response.StatusCode == http.StatusNotFound:
		return false, ErrNotFound

	case response.StatusCode == http.StatusTooManyRequests:
		if wait := retryAfter(response.Header.Get("Retry-After")); wait > 0 {
			if err := sleep(ctx, wait); err != nil {
				return false, err
			}
		}
		return true, errors.New("rate limited (HTTP 429)")

	case response.StatusCode >= 500:
		return true, apiError(response)

	default:
		return false, apiError(response)
	}
}

func apiError(response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
		return &apiErr
	}
	return fmt.Errorf("unexpected status %d: %s", response.StatusCode, string(body))
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
