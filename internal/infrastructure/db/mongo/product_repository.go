package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

const productsCollection = "products"

// ProductRepository is the MongoDB implementation of ports.ProductRepository.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ListingID       string             `bson:"listing_id"`
	ListingURL      string             `bson:"listing_url"`
	Title           string             `bson:"title"`
	FullDescription string             `bson:"full_description,omitempty"`
	Brand           string             `bson:"brand,omitempty"`
	Condition       string             `bson:"condition,omitempty"`
	CurrentPrice    float64            `bson:"current_price"`
	OriginalPrice   float64            `bson:"original_price,omitempty"`
	Installments    int                `bson:"installments,omitempty"`
	StockStatus     string             `bson:"stock_status,omitempty"`
	AffiliateLink   string             `bson:"affiliate_link,omitempty"`
	Category        string             `bson:"category"`
	Subcategory     string             `bson:"subcategory,omitempty"`
	GalleryImages   []string           `bson:"gallery_images,omitempty"`
	Promotional     bool               `bson:"promotional"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toMongoProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
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

func (mp mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:              mp.ID.Hex(),
		ListingID:       mp.ListingID,
		ListingURL:      mp.ListingURL,
		Title:           mp.Title,
		FullDescription: mp.FullDescription,
		Brand:           mp.Brand,
		Condition:       mp.Condition,
		CurrentPrice:    mp.CurrentPrice,
		OriginalPrice:   mp.OriginalPrice,
		Installments:    mp.Installments,
		StockStatus:     mp.StockStatus,
		AffiliateLink:   mp.AffiliateLink,
		Category:        mp.Category,
		Subcategory:     mp.Subcategory,
		GalleryImages:   mp.GalleryImages,
		Promotional:     mp.Promotional,
		CreatedAt:       mp.CreatedAt,
		UpdatedAt:       mp.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	res, err := r.coll.InsertOne(ctx, toMongoProduct(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProductExists
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	p := mp.toDomain()
	return &p, nil
}

// categoryFilter matches the category literally, ignoring case. The value
// comes straight from the query string, so regex metacharacters in it must be
// quoted or the filter would over-match or fail server-side.
func categoryFilter(category string) bson.M {
	return bson.M{"category": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(category) + "$",
		"$options": "i",
	}}
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string, page, pageSize int) (*ports.ProductPage, error) {
	filter := categoryFilter(category)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	items, err := r.findAll(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &ports.ProductPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
	}, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.findAll(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

func (r *ProductRepository) FindPromotional(ctx context.Context) ([]domain.Product, error) {
	return r.findAll(ctx, bson.M{"promotional": true}, options.Find())
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *ProductRepository) ExistsByTitleOrListingID(ctx context.Context, title, listingID string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"title": title},
		bson.M{"listing_id": listingID},
	}}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoProduct(p))
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// EnsureIndexes creates the catalog indexes.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "listing_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "promotional", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, mp.toDomain())
	}
	return products, cur.Err()
}
