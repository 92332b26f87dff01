// Package royale provides a rate-limited client for the external card-data
// API: player profiles (owned cards) and recent battle logs. The advisor
// treats it as a black box; everything returned is plain data.
package royale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the API reports an unknown player tag.
var ErrNotFound = errors.New("player not found")

const (
	defaultBaseURL = "https://api.clashroyale.com/v1"
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 15 * time.Second
)

// Client is a card-data API client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	token       string
}

// NewClient creates a client for the given API token. baseURL may be empty
// to use the production endpoint.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		baseURL:     baseURL,
		token:       token,
	}
}

// Player fetches a player profile, including the owned-card list.
func (c *Client) Player(ctx context.Context, tag string) (*Player, error) {
	var player Player
	if err := c.doRequest(ctx, "/players/"+url.PathEscape(tag), &player); err != nil {
		return nil, fmt.Errorf("fetch player %s: %w", tag, err)
	}
	return &player, nil
}

// RecentBattles fetches the player's battle log, newest first, truncated to
// limit entries. Entries missing data are returned as-is; callers skip what
// they cannot use.
func (c *Client) RecentBattles(ctx context.Context, tag string, limit int) ([]Battle, error) {
	var battles []Battle
	if err := c.doRequest(ctx, "/players/"+url.PathEscape(tag)+"/battlelog", &battles); err != nil {
		return nil, fmt.Errorf("fetch battle log %s: %w", tag, err)
	}
	if limit > 0 && len(battles) > limit {
		battles = battles[:limit]
	}
	return battles, nil
}

// doRequest performs a rate-limited GET and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, path string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
