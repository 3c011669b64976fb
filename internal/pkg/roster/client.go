// Package roster fetches the reference roster from its remote JSON source.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/roster"
)

const (
	fetchTimeout = 15 * time.Second
	maxAttempts  = 3
)

// Client downloads roster entries over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a roster client for the given source URL.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch retrieves the roster entries, retrying transient failures with a short
// backoff. Callers treat any error as degraded mode, not as fatal.
func (c *Client) Fetch(ctx context.Context) ([]roster.Entry, error) {
	if c.url == "" {
		return nil, fmt.Errorf("roster URL is not configured")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		entries, err := c.fetchOnce(ctx)
		if err == nil {
			return entries, nil
		}
		lastErr = err
		slog.Warn("Roster fetch attempt failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("roster fetch failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]roster.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster source returned status %d", resp.StatusCode)
	}

	var entries []roster.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode roster JSON: %w", err)
	}
	return entries, nil
}
