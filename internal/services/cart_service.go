package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/pkg/events"
)

// CartService handles business logic related to carts. Referenced user
// and product ids are validated for format upstream but deliberately not
// checked for existence: carts hold weak references.
type CartService struct {
	repo   repositories.CartRepository
	events *events.Client
}

// NewCartService creates a new CartService. The events client may be nil.
func NewCartService(repo repositories.CartRepository, ev *events.Client) *CartService {
	return &CartService{
		repo:   repo,
		events: ev,
	}
}

// GetAllCarts retrieves carts dated within [start, end).
func (s *CartService) GetAllCarts(ctx context.Context, start, end time.Time, opts repositories.ListOptions) ([]models.Cart, error) {
	return s.repo.GetAll(ctx, repositories.CartFilter{Start: start, End: end}, opts)
}

// GetCartsByUser retrieves a user's carts dated within [start, end).
// Unlike the global listing, zero matches is reported as ErrNotFound.
func (s *CartService) GetCartsByUser(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]models.Cart, error) {
	carts, err := s.repo.GetAll(ctx, repositories.CartFilter{UserID: &userID, Start: start, End: end}, repositories.ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, repositories.ErrNotFound
	}
	return carts, nil
}

// GetCartByID retrieves a single cart by id.
func (s *CartService) GetCartByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCart persists a new cart. The date defaults to now when absent.
func (s *CartService) CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.Cart, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid userId: %w", err)
	}
	items, err := cartItems(req.Products)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = req.Date.Time
	}

	cart := &models.Cart{
		UserID:   userID,
		Date:     date,
		Products: items,
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, err
	}

	publishEvent(s.events, "cart.created", map[string]interface{}{
		"id":     cart.ID.Hex(),
		"userId": cart.UserID.Hex(),
	})
	return cart, nil
}

// UpdateCart applies a partial update and returns the post-update cart.
// A supplied products list replaces the stored one entirely.
func (s *CartService) UpdateCart(ctx context.Context, id primitive.ObjectID, req *models.UpdateCartRequest) (*models.Cart, error) {
	patch := &models.CartPatch{}
	if req.UserID != nil {
		userID, err := primitive.ObjectIDFromHex(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid userId: %w", err)
		}
		patch.UserID = &userID
	}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}
	if req.Products != nil {
		items, err := cartItems(req.Products)
		if err != nil {
			return nil, err
		}
		patch.Products = items
	}
	return s.repo.Update(ctx, id, patch)
}

// DeleteCart removes a cart by id.
func (s *CartService) DeleteCart(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, "cart.deleted", map[string]interface{}{"id": id.Hex()})
	return nil
}

// cartItems coerces validated request items into persisted cart items.
func cartItems(reqs []models.CartItemRequest) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0, len(reqs))
	for _, item := range reqs {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid productId %s: %w", item.ProductID, err)
		}
		items = append(items, models.CartItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}
