package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{db: db, coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          int64   `bson:"_id"`
	Name        string  `bson:"name"`
	Description string  `bson:"description"`
	Price       float64 `bson:"price"`
	Type        string  `bson:"type"`
	CreatorID   int64   `bson:"creator_id"`
	DemoURL     string  `bson:"demo_url,omitempty"`
	CreatedAt   int64   `bson:"created_at"`
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	id, err := nextSequence(ctx, r.db, productsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoProduct{
		ID:          id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Type:        product.Type,
		CreatorID:   product.CreatorID,
		DemoURL:     product.DemoURL,
		CreatedAt:   product.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *product
	created.ID = id
	return &created, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, &domain.Product{
			ID:          mp.ID,
			Name:        mp.Name,
			Description: mp.Description,
			Price:       mp.Price,
			Type:        mp.Type,
			CreatorID:   mp.CreatorID,
			DemoURL:     mp.DemoURL,
			CreatedAt:   unixToTime(mp.CreatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
