package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents an item in the store catalog.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
}

// CreateProductRequest is the validated payload for POST /products.
// Price is a pointer so that a present-but-zero price still satisfies
// the required rule.
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image" validate:"omitempty,uri"`
	Category    string   `json:"category"`
}

// UpdateProductRequest is the validated payload for PUT/PATCH
// /products/:id. All fields optional; only supplied fields are updated.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image" validate:"omitempty,uri"`
	Category    *string  `json:"category"`
}
