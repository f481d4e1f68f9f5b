package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopora-backend/internal/models"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(productsCollection)}
}

// List returns all products, newest first.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs resolves a batch of product references in one round trip. IDs
// with no matching product are simply absent from the result map.
func (s *ProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	result := make(map[primitive.ObjectID]*models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	for i := range products {
		result[products[i].ID] = &products[i]
	}
	return result, nil
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the mutable fields of an existing product.
func (s *ProductStore) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{
		"$set": bson.M{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image":       product.Image,
			"category":    product.Category,
			"stock":       product.Stock,
			"featured":    product.Featured,
			"updatedAt":   product.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertMany seeds the catalog in bulk.
func (s *ProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}
