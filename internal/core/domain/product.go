package domain

import "time"

// Product is the catalog aggregate. Gallery images are stored as plain URLs
// keyed by position; the owning product is referenced by id only.
type Product struct {
	ID              string    `json:"product_id"`
	ListingID       string    `json:"listing_id"`
	ListingURL      string    `json:"listing_url"`
	Title           string    `json:"title"`
	FullDescription string    `json:"full_description,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Condition       string    `json:"condition,omitempty"`
	CurrentPrice    float64   `json:"current_price"`
	OriginalPrice   float64   `json:"original_price,omitempty"`
	Installments    int       `json:"installments,omitempty"`
	StockStatus     string    `json:"stock_status,omitempty"`
	AffiliateLink   string    `json:"affiliate_link,omitempty"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"`
	GalleryImages   []string  `json:"gallery_images,omitempty"`
	Promotional     bool      `json:"promotional"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
