package repositories

import (
	"context"
	"sync"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
	order    []primitive.ObjectID
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[primitive.ObjectID]models.Product),
	}
}

// GetAll returns all products in insertion order, honoring sort and limit.
func (r *MockProductRepository) GetAll(_ context.Context, opts ListOptions) ([]models.Product, error) {
	return r.filtered(func(models.Product) bool { return true }, opts), nil
}

// GetByCategory returns products whose category matches exactly.
func (r *MockProductRepository) GetByCategory(_ context.Context, category string, opts ListOptions) ([]models.Product, error) {
	return r.filtered(func(p models.Product) bool { return p.Category == category }, opts), nil
}

func (r *MockProductRepository) filtered(match func(models.Product) bool, opts ListOptions) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]primitive.ObjectID, 0, len(r.order))
	for _, id := range r.order {
		if match(r.products[id]) {
			matched = append(matched, id)
		}
	}
	products := make([]models.Product, 0, len(matched))
	for _, id := range orderedIDs(matched, opts) {
		products = append(products, r.products[id])
	}
	return products
}

// Categories returns the distinct category values, in first-seen order.
func (r *MockProductRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, id := range r.order {
		c := r.products[id].Category
		if c != "" && !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Update applies a partial update and returns the updated product.
func (r *MockProductRepository) Update(_ context.Context, id primitive.ObjectID, patch *models.UpdateProductRequest) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its id.
func (r *MockProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
