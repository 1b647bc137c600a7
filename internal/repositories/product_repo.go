package repositories

import (
	"context"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, opts ListOptions) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string, opts ListOptions) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, patch *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
