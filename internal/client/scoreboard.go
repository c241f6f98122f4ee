// Package client holds the HTTP clients for the two upstream feeds: the
// scoreboard provider and the secondary odds provider.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ncaam_pickem/engine/internal/metrics"
	"ncaam_pickem/engine/internal/models"

	"github.com/rs/zerolog/log"
)

// ScoreboardClient fetches raw per-game records from the scoreboard provider.
type ScoreboardClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewScoreboardClient creates a scoreboard client with bounded retries and a
// request timeout. The upstream has no SLA; every call must be assumed to
// fail sometimes.
func NewScoreboardClient(baseURL string, timeout time.Duration) *ScoreboardClient {
	rateLimiter := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		rateLimiter <- struct{}{}
	}

	return &ScoreboardClient{
		baseURL:     baseURL,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// scoreboardResponse is the provider's day envelope.
type scoreboardResponse struct {
	Events []models.ScoreboardEvent `json:"events"`
}

// FetchDay fetches all scoreboard events for one civil date (YYYYMMDD in the
// provider's query format).
func (c *ScoreboardClient) FetchDay(ctx context.Context, date time.Time) ([]models.ScoreboardEvent, error) {
	start := time.Now()
	url := fmt.Sprintf("%s/scoreboard?dates=%s", c.baseURL, date.Format("20060102"))

	body, err := c.get(ctx, url)
	if err != nil {
		metrics.RecordFeedFetch("scoreboard", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	var resp scoreboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RecordFeedFetch("scoreboard", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to unmarshal scoreboard: %w", err)
	}

	metrics.RecordFeedFetch("scoreboard", "success", time.Since(start).Seconds())
	return resp.Events, nil
}

// get performs a GET request with retry logic and rate limiting
func (c *ScoreboardClient) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying feed request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
		}

		body, retryable, err := c.attempt(ctx, url)
		c.rateLimiter <- struct{}{}

		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// attempt performs one request and classifies its failure.
func (c *ScoreboardClient) attempt(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pickem-engine/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", url).
			Int("size", len(body)).
			Msg("Feed request successful")
		return body, false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, true, fmt.Errorf("feed returned retryable status %d", resp.StatusCode)

	default:
		return nil, false, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}
}
