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

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		col: db.Collection("users"),
	}
}

// GetAll retrieves all users, sorted by insertion identifier.
func (r *MongoUserRepository) GetAll(ctx context.Context, opts ListOptions) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, mongoFindOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a single user by id.
func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id.Hex(), err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by exact username match.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// Create inserts a new user and assigns its store-generated id.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update applies a partial update and returns the post-update document.
// Absent targets yield ErrNotFound; there is no upsert.
func (r *MongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, patch *models.UserPatch) (*models.User, error) {
	set := bson.M{}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.Firstname != nil {
		set["name.firstname"] = *patch.Firstname
	}
	if patch.Lastname != nil {
		set["name.lastname"] = *patch.Lastname
	}
	if patch.Address != nil {
		if patch.Address.City != nil {
			set["address.city"] = *patch.Address.City
		}
		if patch.Address.Street != nil {
			set["address.street"] = *patch.Address.Street
		}
		if patch.Address.Number != nil {
			set["address.number"] = *patch.Address.Number
		}
		if patch.Address.Zipcode != nil {
			set["address.zipcode"] = *patch.Address.Zipcode
		}
		if patch.Address.Geolocation != nil {
			if patch.Address.Geolocation.Lat != nil {
				set["address.geolocation.lat"] = *patch.Address.Geolocation.Lat
			}
			if patch.Address.Geolocation.Long != nil {
				set["address.geolocation.long"] = *patch.Address.Geolocation.Long
			}
		}
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var user models.User
	if err := res.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id.Hex(), err)
	}
	return &user, nil
}

// Delete removes a user by id.
func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
