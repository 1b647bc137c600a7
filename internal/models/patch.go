package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserPatch is the persistence-ready partial update for a user. Password,
// when present, is already hashed.
type UserPatch struct {
	Email     *string
	Username  *string
	Password  *string
	Firstname *string
	Lastname  *string
	Address   *AddressPatch
	Phone     *string
}

// CartPatch is the persistence-ready partial update for a cart. A nil
// Products slice leaves the stored list untouched.
type CartPatch struct {
	UserID   *primitive.ObjectID
	Date     *time.Time
	Products []CartItem
}
