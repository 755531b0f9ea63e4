package ports

import (
	"context"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// CreateProductInput carries a new catalog entry. Fields left empty are
// filled from the scraped listing where the scraper provides them.
type CreateProductInput struct {
	ListingID     string
	ListingURL    string
	Title         string
	Description   string
	Brand         string
	Condition     string
	CurrentPrice  float64
	OriginalPrice float64
	Installments  int
	StockStatus   string
	AffiliateLink string
	Category      string
	Subcategory   string
	GalleryImages []string
}

// UpdateProductInput carries a partial product update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	ProductID     string
	Title         *string
	Description   *string
	Brand         *string
	Condition     *string
	CurrentPrice  *float64
	OriginalPrice *float64
	Installments  *int
	StockStatus   *string
	AffiliateLink *string
	Category      *string
	Subcategory   *string
	GalleryImages []string
}

type ProductService interface {
	Create(ctx context.Context, principal *domain.Principal, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	FindByCategory(ctx context.Context, category string, page, pageSize int) (*ProductPage, error)
	ListAll(ctx context.Context, principal *domain.Principal) ([]domain.Product, error)
	ListPromotional(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, principal *domain.Principal, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, principal *domain.Principal, id string) error
	SetPromotional(ctx context.Context, principal *domain.Principal, id string, promotional bool) error

	// StartCatalogSync submits a full catalog sync to the task
	// coordinator and returns the opaque task id.
	StartCatalogSync(ctx context.Context, principal *domain.Principal) (string, error)
	// SyncStatus polls the coordinator for the given task id.
	SyncStatus(principal *domain.Principal, taskID string) (TaskStatus, error)
}
