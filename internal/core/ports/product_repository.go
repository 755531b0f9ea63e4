package ports

import (
	"context"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

// ProductPage is one page of a category listing.
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int64            `json:"total_items"`
}

// ProductRepository defines the persistence contract for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByCategory(ctx context.Context, category string, page, pageSize int) (*ProductPage, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindPromotional(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ExistsByTitleOrListingID(ctx context.Context, title, listingID string) (bool, error)
	Save(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
