package repositories

import (
	"context"
	"errors"
	"fmt"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	col *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		col: db.Collection("carts"),
	}
}

// GetAll retrieves carts matching the filter. The date range is
// inclusive of Start and exclusive of End.
func (r *MongoCartRepository) GetAll(ctx context.Context, filter CartFilter, opts ListOptions) ([]models.Cart, error) {
	query := bson.M{
		"date": bson.M{"$gte": filter.Start, "$lt": filter.End},
	}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}

	cursor, err := r.col.Find(ctx, query, mongoFindOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to get carts: %w", err)
	}
	carts := make([]models.Cart, 0)
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, fmt.Errorf("failed to decode carts: %w", err)
	}
	return carts, nil
}

// GetByID retrieves a single cart by id.
func (r *MongoCartRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", id.Hex(), err)
	}
	return &cart, nil
}

// Create inserts a new cart and assigns its store-generated id.
// Referenced user and product ids are not checked for existence.
func (r *MongoCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, cart); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Update applies a partial update and returns the post-update document.
func (r *MongoCartRepository) Update(ctx context.Context, id primitive.ObjectID, patch *models.CartPatch) (*models.Cart, error) {
	set := bson.M{}
	if patch.UserID != nil {
		set["userId"] = *patch.UserID
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Products != nil {
		set["products"] = patch.Products
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var cart models.Cart
	if err := res.Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update cart %s: %w", id.Hex(), err)
	}
	return &cart, nil
}

// Delete removes a cart by id.
func (r *MongoCartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
