package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

// ProductService implements catalog operations. Mutations are admin-only;
// reads are public except for the full listing.
type ProductService struct {
	repo        ports.ProductRepository
	scraper     ports.ScraperGateway
	coordinator ports.SyncCoordinator
	logger      zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, scraper ports.ScraperGateway, coordinator ports.SyncCoordinator, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, scraper: scraper, coordinator: coordinator, logger: logger}
}

// Create builds a catalog entry from the request, filling fields the caller
// left empty from the scraped listing.
func (s *ProductService) Create(ctx context.Context, principal *domain.Principal, input ports.CreateProductInput) (*domain.Product, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	scraped, err := s.scraper.GetListing(ctx, input.ListingURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ListingID:       pick(input.ListingID, scraped.ListingID),
		ListingURL:      pick(input.ListingURL, scraped.ListingURL),
		Title:           pick(input.Title, scraped.Title),
		FullDescription: pick(input.Description, scraped.Description),
		Brand:           pick(input.Brand, scraped.Brand),
		Condition:       pick(input.Condition, scraped.Condition),
		CurrentPrice:    pickFloat(input.CurrentPrice, scraped.CurrentPrice),
		OriginalPrice:   pickFloat(input.OriginalPrice, scraped.OriginalPrice),
		Installments:    pickInt(input.Installments, scraped.Installments),
		StockStatus:     pick(input.StockStatus, scraped.StockStatus),
		AffiliateLink:   input.AffiliateLink,
		Category:        input.Category,
		Subcategory:     input.Subcategory,
		GalleryImages:   input.GalleryImages,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(product.GalleryImages) == 0 {
		product.GalleryImages = scraped.GalleryImages
	}

	exists, err := s.repo.ExistsByTitleOrListingID(ctx, product.Title, product.ListingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProductExists
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("listing_id", created.ListingID).Msg("product created")
	return created, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) FindByCategory(ctx context.Context, category string, page, pageSize int) (*ports.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.repo.FindByCategory(ctx, category, page, pageSize)
}

func (s *ProductService) ListAll(ctx context.Context, principal *domain.Principal) ([]domain.Product, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

func (s *ProductService) ListPromotional(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindPromotional(ctx)
}

func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *ProductService) Update(ctx context.Context, principal *domain.Principal, input ports.UpdateProductInput) (*domain.Product, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.FullDescription = *input.Description
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Condition != nil {
		product.Condition = *input.Condition
	}
	if input.CurrentPrice != nil {
		product.CurrentPrice = *input.CurrentPrice
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = *input.OriginalPrice
	}
	if input.Installments != nil {
		product.Installments = *input.Installments
	}
	if input.StockStatus != nil {
		product.StockStatus = *input.StockStatus
	}
	if input.AffiliateLink != nil {
		product.AffiliateLink = *input.AffiliateLink
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Subcategory != nil {
		product.Subcategory = *input.Subcategory
	}
	if input.GalleryImages != nil {
		product.GalleryImages = input.GalleryImages
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, principal *domain.Principal, id string) error {
	if err := AuthorizeAdmin(principal); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) SetPromotional(ctx context.Context, principal *domain.Principal, id string, promotional bool) error {
	if err := AuthorizeAdmin(principal); err != nil {
		return err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Promotional = promotional
	product.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, product)
}

// StartCatalogSync hands a full-sync operation to the coordinator and returns
// its task id without waiting for the scraper.
func (s *ProductService) StartCatalogSync(ctx context.Context, principal *domain.Principal) (string, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return "", err
	}

	taskID := s.coordinator.Submit(func(taskCtx context.Context) (string, error) {
		return s.scraper.StartFullSync(taskCtx)
	})

	s.logger.Info().Str("task_id", taskID).Str("requested_by", principal.Username).Msg("catalog sync submitted")
	return taskID, nil
}

// SyncStatus polls the coordinator. The poll itself performs the
// read-once removal, so the handler must deliver the returned status to the
// client unconditionally.
func (s *ProductService) SyncStatus(principal *domain.Principal, taskID string) (ports.TaskStatus, error) {
	if err := AuthorizeAdmin(principal); err != nil {
		return ports.TaskStatus{}, err
	}
	return s.coordinator.Poll(taskID), nil
}

func pick(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func pickFloat(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func pickInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
