package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/pkg/events"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events *events.Client
}

// NewProductService creates a new ProductService. The events client may
// be nil.
func NewProductService(repo repositories.ProductRepository, ev *events.Client) *ProductService {
	return &ProductService{
		repo:   repo,
		events: ev,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context, opts repositories.ListOptions) ([]models.Product, error) {
	return s.repo.GetAll(ctx, opts)
}

// GetProductsByCategory retrieves products within a category. An empty
// result is valid output.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category string, opts repositories.ListOptions) ([]models.Product, error) {
	return s.repo.GetByCategory(ctx, category, opts)
}

// GetCategories retrieves the distinct product categories.
func (s *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// GetProductByID retrieves a single product by id.
func (s *ProductService) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Title:       req.Title,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(s.events, "product.created", map[string]interface{}{
		"id":    product.ID.Hex(),
		"title": product.Title,
	})
	return product, nil
}

// UpdateProduct applies a partial update and returns the post-update
// product.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, error) {
	return s.repo.Update(ctx, id, req)
}

// DeleteProduct removes a product by id.
func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, "product.deleted", map[string]interface{}{"id": id.Hex()})
	return nil
}
