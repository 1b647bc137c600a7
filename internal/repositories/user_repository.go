package repositories

import (
	"context"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll(ctx context.Context, opts ListOptions) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, patch *models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
