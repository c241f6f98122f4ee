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
)

const oddsSportKey = "basketball_ncaab"

// OddsClient fetches per-game bookmaker quotes from the secondary odds
// provider. The odds feed is best-effort: the normalizer works without it,
// falling back to the scoreboard's own quotations.
type OddsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOddsClient creates an odds feed client.
func NewOddsClient(baseURL, apiKey string, timeout time.Duration) *OddsClient {
	return &OddsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSpreads fetches the current spread quotes for all upcoming games.
func (c *OddsClient) FetchSpreads(ctx context.Context) ([]models.OddsEvent, error) {
	start := time.Now()
	url := fmt.Sprintf("%s/sports/%s/odds?markets=%s&apiKey=%s",
		c.baseURL, oddsSportKey, models.MarketSpreads, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFeedFetch("odds", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("odds request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFeedFetch("odds", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to read odds response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFeedFetch("odds", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("odds feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var events []models.OddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		metrics.RecordFeedFetch("odds", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to unmarshal odds: %w", err)
	}

	metrics.RecordFeedFetch("odds", "success", time.Since(start).Seconds())
	return events, nil
}
