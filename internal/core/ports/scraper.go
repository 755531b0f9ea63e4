package ports

import "context"

// ScrapedListing is the payload returned by the external scraping service for
// a single product listing.
type ScrapedListing struct {
	ListingID     string   `json:"listing_id"`
	ListingURL    string   `json:"listing_url"`
	Title         string   `json:"title"`
	Description   string   `json:"full_description"`
	Brand         string   `json:"brand"`
	Condition     string   `json:"condition"`
	CurrentPrice  float64  `json:"current_price"`
	OriginalPrice float64  `json:"original_price"`
	Installments  int      `json:"installments"`
	StockStatus   string   `json:"stock_status"`
	GalleryImages []string `json:"gallery_image_urls"`
}

// ScraperGateway fronts the external scraping service. Implementations fail
// fast with domain.ErrCircuitOpen when the breaker disallows the call and
// surface transport problems as domain.ErrConnectionFailure. No retries
// happen behind this interface.
type ScraperGateway interface {
	GetListing(ctx context.Context, url string) (*ScrapedListing, error)
	// StartFullSync runs a whole-catalog sync against the scraper and
	// returns its textual report. Long-running; callers are expected to
	// run it through the task coordinator.
	StartFullSync(ctx context.Context) (string, error)
}
