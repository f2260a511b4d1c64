package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Client fetches the current ambient condition from a JSON endpoint and
// caches it between refreshes. Lookups never fail the caller: on error the
// previously cached condition is served, "Unknown" before the first
// successful fetch. With no endpoint configured the client is a static
// "Unknown" source.
type Client struct {
	endpoint   string
	interval   time.Duration
	httpClient *http.Client

	mu        sync.Mutex
	condition string
	fetchedAt time.Time
}

func NewClient(endpoint string, interval time.Duration) *Client {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Client{
		endpoint: endpoint,
		interval: interval,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		condition: "Unknown",
	}
}

type conditionResponse struct {
	Condition string `json:"condition"`
}

// Condition returns the cached condition, refreshing it when the cache is
// older than the configured interval.
func (c *Client) Condition(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.endpoint == "" {
		return c.condition
	}
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.interval {
		return c.condition
	}

	// Stamp before the result is known so a dead endpoint is retried once
	// per interval, not once per frame.
	c.fetchedAt = time.Now()

	condition, err := c.lookup(ctx)
	if err != nil {
		log.Printf("failed to refresh weather condition: %v", err)
		return c.condition
	}

	c.condition = condition
	return c.condition
}

func (c *Client) lookup(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var cr conditionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if cr.Condition == "" {
		return "", fmt.Errorf("empty condition in response")
	}
	return cr.Condition, nil
}
