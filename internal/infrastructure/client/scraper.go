package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// ScraperClient is the raw HTTP client for the external scraping service. It
// performs no resilience bookkeeping; callers go through the gateway.
type ScraperClient struct {
	baseURL string
	http    *http.Client
}

// NewScraperClient creates a client for the scraper at baseURL. A default
// timeout is applied when none is provided.
func NewScraperClient(baseURL string, timeout time.Duration) *ScraperClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ScraperClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetListing fetches the scraped data for a single product listing.
func (c *ScraperClient) GetListing(ctx context.Context, listingURL string) (*ports.ScrapedListing, error) {
	endpoint := fmt.Sprintf("%s/mercado-livre/product-info?url=%s", c.baseURL, url.QueryEscape(listingURL))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var listing ports.ScrapedListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode scraper response: %w", err)
	}
	return &listing, nil
}

// StartFullSync triggers a whole-catalog sync and returns the scraper's
// textual report. The scraper streams progress; only the final body matters
// here.
func (c *ScraperClient) StartFullSync(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/mercado-livre/sync/stream")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *ScraperClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build scraper request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectionFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: scraper returned status %d", domain.ErrConnectionFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectionFailure, err)
	}
	return body, nil
}
