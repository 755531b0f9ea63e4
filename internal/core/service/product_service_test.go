package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

var adminPrincipal = &domain.Principal{UserID: "u1", Username: "root", Profile: domain.ProfileAdmin}

func sampleListing() *ports.ScrapedListing {
	return &ports.ScrapedListing{
		ListingID:     "MLB123",
		ListingURL:    "https://listings.example.com/MLB123",
		Title:         "Notebook Gamer 16GB",
		Description:   "A fast notebook.",
		Brand:         "Acme",
		Condition:     "new",
		CurrentPrice:  3499.90,
		OriginalPrice: 3999.90,
		Installments:  10,
		StockStatus:   "in_stock",
		GalleryImages: []string{"https://img.example.com/1.jpg"},
	}
}

func newProductService(repo ports.ProductRepository, scraper ports.ScraperGateway) *ProductService {
	coordinator := NewSyncCoordinator(context.Background(), zerolog.Nop())
	return NewProductService(repo, scraper, coordinator, zerolog.Nop())
}

func TestCreateProductFillsFromListing(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{listing: sampleListing()})

	created, err := svc.Create(context.Background(), adminPrincipal, ports.CreateProductInput{
		ListingURL: "https://listings.example.com/MLB123",
		Category:   "informatica",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("created product has no id")
	}
	if created.Title != "Notebook Gamer 16GB" {
		t.Errorf("Title = %q, want scraped title", created.Title)
	}
	if created.CurrentPrice != 3499.90 {
		t.Errorf("CurrentPrice = %v, want scraped price", created.CurrentPrice)
	}
	if len(created.GalleryImages) != 1 {
		t.Errorf("GalleryImages = %v, want scraped gallery", created.GalleryImages)
	}
	if created.Category != "informatica" {
		t.Errorf("Category = %q, want caller value", created.Category)
	}
}

func TestCreateProductCallerOverridesListing(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{listing: sampleListing()})

	created, err := svc.Create(context.Background(), adminPrincipal, ports.CreateProductInput{
		ListingURL:   "https://listings.example.com/MLB123",
		Title:        "Custom Title",
		CurrentPrice: 2999.00,
		Category:     "informatica",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Title != "Custom Title" {
		t.Errorf("Title = %q, want caller override", created.Title)
	}
	if created.CurrentPrice != 2999.00 {
		t.Errorf("CurrentPrice = %v, want caller override", created.CurrentPrice)
	}
	if created.Brand != "Acme" {
		t.Errorf("Brand = %q, want scraped fallback", created.Brand)
	}
}

func TestCreateProductDuplicate(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{listing: sampleListing()})

	input := ports.CreateProductInput{ListingURL: "https://listings.example.com/MLB123", Category: "informatica"}
	if _, err := svc.Create(context.Background(), adminPrincipal, input); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), adminPrincipal, input); !errors.Is(err, domain.ErrProductExists) {
		t.Errorf("second Create() error = %v, want ErrProductExists", err)
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	svc := newProductService(newStubProductRepo(), &stubScraper{listing: sampleListing()})

	user := &domain.Principal{Username: "maria", Profile: domain.ProfileUser}
	if _, err := svc.Create(context.Background(), user, ports.CreateProductInput{ListingURL: "x"}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("Create() as user error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.Create(context.Background(), nil, ports.CreateProductInput{ListingURL: "x"}); !errors.Is(err, domain.ErrNoAuthenticatedPrincipal) {
		t.Errorf("Create() without principal error = %v, want ErrNoAuthenticatedPrincipal", err)
	}
}

func TestCreateProductScraperFailurePropagates(t *testing.T) {
	svc := newProductService(newStubProductRepo(), &stubScraper{listingErr: domain.ErrCircuitOpen})

	_, err := svc.Create(context.Background(), adminPrincipal, ports.CreateProductInput{ListingURL: "x"})
	if !errors.Is(err, domain.ErrCircuitOpen) {
		t.Errorf("Create() error = %v, want ErrCircuitOpen", err)
	}
}

func TestFindByCategoryClampsPaging(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{})

	page, err := svc.FindByCategory(context.Background(), "informatica", 0, 5000)
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if page.Page != 1 {
		t.Errorf("Page = %d, want clamped to 1", page.Page)
	}
	if page.PageSize != 10 {
		t.Errorf("PageSize = %d, want default 10", page.PageSize)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{listing: sampleListing()})

	created, err := svc.Create(context.Background(), adminPrincipal, ports.CreateProductInput{
		ListingURL: "https://listings.example.com/MLB123",
		Category:   "informatica",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	price := 1999.99
	updated, err := svc.Update(context.Background(), adminPrincipal, ports.UpdateProductInput{
		ProductID:    created.ID,
		CurrentPrice: &price,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.CurrentPrice != price {
		t.Errorf("CurrentPrice = %v, want %v", updated.CurrentPrice, price)
	}
	if updated.Title != created.Title {
		t.Errorf("Title changed to %q on a price-only update", updated.Title)
	}
}

func TestSetPromotional(t *testing.T) {
	repo := newStubProductRepo()
	svc := newProductService(repo, &stubScraper{listing: sampleListing()})

	created, err := svc.Create(context.Background(), adminPrincipal, ports.CreateProductInput{
		ListingURL: "https://listings.example.com/MLB123",
		Category:   "informatica",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.SetPromotional(context.Background(), adminPrincipal, created.ID, true); err != nil {
		t.Fatalf("SetPromotional() error = %v", err)
	}

	promos, err := svc.ListPromotional(context.Background())
	if err != nil {
		t.Fatalf("ListPromotional() error = %v", err)
	}
	if len(promos) != 1 || promos[0].ID != created.ID {
		t.Errorf("ListPromotional() = %v, want the flagged product", promos)
	}
}

func TestStartCatalogSyncAndStatus(t *testing.T) {
	scraper := &stubScraper{syncReport: "synced 7 products"}
	svc := newProductService(newStubProductRepo(), scraper)

	if _, err := svc.StartCatalogSync(context.Background(), &domain.Principal{Username: "maria", Profile: domain.ProfileUser}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("StartCatalogSync() as user error = %v, want ErrAccessDenied", err)
	}

	taskID, err := svc.StartCatalogSync(context.Background(), adminPrincipal)
	if err != nil {
		t.Fatalf("StartCatalogSync() error = %v", err)
	}
	if taskID == "" {
		t.Fatal("StartCatalogSync() returned empty task id")
	}

	var status ports.TaskStatus
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, err = svc.SyncStatus(adminPrincipal, taskID)
		if err != nil {
			t.Fatalf("SyncStatus() error = %v", err)
		}
		if status.State != ports.TaskRunning {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if status.State != ports.TaskCompleted {
		t.Fatalf("SyncStatus() state = %v, want COMPLETED", status.State)
	}
	if status.Report != "synced 7 products" {
		t.Errorf("SyncStatus() report = %q, want scraper report", status.Report)
	}

	if _, err := svc.SyncStatus(&domain.Principal{Username: "maria", Profile: domain.ProfileUser}, taskID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("SyncStatus() as user error = %v, want ErrAccessDenied", err)
	}
}
