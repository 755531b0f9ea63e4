package handler

import (
	"time"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

type createProductRequest struct {
	ListingID     string   `json:"listing_id"`
	ListingURL    string   `json:"listing_url" validate:"required,url"`
	Title         string   `json:"title"`
	Description   string   `json:"full_description"`
	Brand         string   `json:"brand"`
	Condition     string   `json:"condition"`
	CurrentPrice  float64  `json:"current_price"`
	OriginalPrice float64  `json:"original_price"`
	Installments  int      `json:"installments"`
	StockStatus   string   `json:"stock_status"`
	AffiliateLink string   `json:"affiliate_link"`
	Category      string   `json:"category" validate:"required"`
	Subcategory   string   `json:"subcategory"`
	GalleryImages []string `json:"gallery_images"`
}

func (r createProductRequest) toInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		ListingID:     r.ListingID,
		ListingURL:    r.ListingURL,
		Title:         r.Title,
		Description:   r.Description,
		Brand:         r.Brand,
		Condition:     r.Condition,
		CurrentPrice:  r.CurrentPrice,
		OriginalPrice: r.OriginalPrice,
		Installments:  r.Installments,
		StockStatus:   r.StockStatus,
		AffiliateLink: r.AffiliateLink,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		GalleryImages: r.GalleryImages,
	}
}

type updateProductRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"full_description"`
	Brand         *string  `json:"brand"`
	Condition     *string  `json:"condition"`
	CurrentPrice  *float64 `json:"current_price"`
	OriginalPrice *float64 `json:"original_price"`
	Installments  *int     `json:"installments"`
	StockStatus   *string  `json:"stock_status"`
	AffiliateLink *string  `json:"affiliate_link"`
	Category      *string  `json:"category"`
	Subcategory   *string  `json:"subcategory"`
	GalleryImages []string `json:"gallery_images"`
}

func (r updateProductRequest) toInput(productID string) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		ProductID:     productID,
		Title:         r.Title,
		Description:   r.Description,
		Brand:         r.Brand,
		Condition:     r.Condition,
		CurrentPrice:  r.CurrentPrice,
		OriginalPrice: r.OriginalPrice,
		Installments:  r.Installments,
		StockStatus:   r.StockStatus,
		AffiliateLink: r.AffiliateLink,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		GalleryImages: r.GalleryImages,
	}
}

type productResponse struct {
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

type syncSubmitResponse struct {
	TaskID string `json:"task_id"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		ListingID:       p.ListingID,
		ListingURL:      p.ListingURL,
		Title:           p.Title,
		FullDescription: p.FullDescription,
		Brand:           p.Brand,
		Condition:       p.Condition,
		CurrentPrice:    p.CurrentPrice,
		OriginalPrice:   p.OriginalPrice,
		Installments:    p.Installments,
		StockStatus:     p.StockStatus,
		AffiliateLink:   p.AffiliateLink,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		GalleryImages:   p.GalleryImages,
		Promotional:     p.Promotional,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}
