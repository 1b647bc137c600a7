package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a product reference with a quantity, embedded in a cart.
type CartItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart represents a user's cart. The referenced user and products are
// weak references: they are validated for format, not for existence.
// The cart's own id is excluded from responses.
type Cart struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID   primitive.ObjectID `json:"userId" bson:"userId"`
	Date     time.Time          `json:"date" bson:"date"`
	Products []CartItem         `json:"products" bson:"products"`
}

// FlexTime accepts either an RFC 3339 timestamp or a bare yyyy-mm-dd
// date in JSON bodies, marshaling back as RFC 3339.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// CartItemRequest is the validated shape of a cart product entry.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateCartRequest is the validated payload for POST /carts. Date is
// optional and defaults to the time of creation.
type CreateCartRequest struct {
	UserID   string            `json:"userId" validate:"required,objectid"`
	Date     *FlexTime         `json:"date"`
	Products []CartItemRequest `json:"products" validate:"required,dive"`
}

// UpdateCartRequest is the validated payload for PUT/PATCH /carts/:id.
type UpdateCartRequest struct {
	UserID   *string           `json:"userId" validate:"omitempty,objectid"`
	Date     *FlexTime         `json:"date"`
	Products []CartItemRequest `json:"products" validate:"omitempty,dive"`
}
