package repositories

import (
	"context"
	"time"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartFilter narrows cart listings. The date range is half-open:
// carts dated in [Start, End) match. A nil UserID matches every owner.
type CartFilter struct {
	UserID *primitive.ObjectID
	Start  time.Time
	End    time.Time
}

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetAll(ctx context.Context, filter CartFilter, opts ListOptions) ([]models.Cart, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Update(ctx context.Context, id primitive.ObjectID, patch *models.CartPatch) (*models.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
