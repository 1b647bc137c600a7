package repositories

import (
	"context"
	"sync"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	mu    sync.RWMutex
	carts map[primitive.ObjectID]models.Cart
	order []primitive.ObjectID
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[primitive.ObjectID]models.Cart),
	}
}

// GetAll returns carts matching the filter, in insertion order. The
// date range is inclusive of Start and exclusive of End.
func (r *MockCartRepository) GetAll(_ context.Context, filter CartFilter, opts ListOptions) ([]models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]primitive.ObjectID, 0, len(r.order))
	for _, id := range r.order {
		cart := r.carts[id]
		if filter.UserID != nil && cart.UserID != *filter.UserID {
			continue
		}
		if cart.Date.Before(filter.Start) || !cart.Date.Before(filter.End) {
			continue
		}
		matched = append(matched, id)
	}

	carts := make([]models.Cart, 0, len(matched))
	for _, id := range orderedIDs(matched, opts) {
		carts = append(carts, r.carts[id])
	}
	return carts, nil
}

// GetByID returns a cart by its id.
func (r *MockCartRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cart, nil
}

// Create adds a new cart.
func (r *MockCartRepository) Create(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	r.carts[cart.ID] = *cart
	r.order = append(r.order, cart.ID)
	return nil
}

// Update applies a partial update and returns the updated cart.
func (r *MockCartRepository) Update(_ context.Context, id primitive.ObjectID, patch *models.CartPatch) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.UserID != nil {
		cart.UserID = *patch.UserID
	}
	if patch.Date != nil {
		cart.Date = *patch.Date
	}
	if patch.Products != nil {
		cart.Products = patch.Products
	}
	r.carts[id] = cart
	return &cart, nil
}

// Delete removes a cart by its id.
func (r *MockCartRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return ErrNotFound
	}
	delete(r.carts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
