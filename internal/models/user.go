package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Geolocation is the lat/long pair nested inside a user's address.
type Geolocation struct {
	Lat  string `json:"lat" bson:"lat"`
	Long string `json:"long" bson:"long"`
}

// Address is a user's postal address.
type Address struct {
	City        string      `json:"city" bson:"city"`
	Street      string      `json:"street" bson:"street"`
	Number      int         `json:"number" bson:"number"`
	Zipcode     string      `json:"zipcode" bson:"zipcode"`
	Geolocation Geolocation `json:"geolocation" bson:"geolocation"`
}

// Name holds a user's first and last name.
type Name struct {
	Firstname string `json:"firstname" bson:"firstname"`
	Lastname  string `json:"lastname" bson:"lastname"`
}

// User represents a registered user. The internal id and the password
// hash are never serialized in responses.
type User struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Username string             `json:"username" bson:"username"`
	Password string             `json:"-" bson:"password"`
	Name     Name               `json:"name" bson:"name"`
	Address  Address            `json:"address" bson:"address"`
	Phone    string             `json:"phone" bson:"phone"`
}

// GeolocationRequest is the geolocation shape accepted on user creation.
type GeolocationRequest struct {
	Lat  string `json:"lat" validate:"required"`
	Long string `json:"long" validate:"required"`
}

// AddressRequest is the address shape accepted on user creation.
type AddressRequest struct {
	City        string             `json:"city" validate:"required"`
	Street      string             `json:"street" validate:"required"`
	Number      int                `json:"number" validate:"required"`
	Zipcode     string             `json:"zipcode" validate:"required"`
	Geolocation GeolocationRequest `json:"geolocation" validate:"required"`
}

// CreateUserRequest is the validated payload for POST /users. Unknown
// JSON fields are dropped by decoding into this struct.
type CreateUserRequest struct {
	Email     string         `json:"email" validate:"required,email"`
	Username  string         `json:"username" validate:"required"`
	Password  string         `json:"password" validate:"required,min=8"`
	Firstname string         `json:"firstname" validate:"required"`
	Lastname  string         `json:"lastname" validate:"required"`
	Address   AddressRequest `json:"address" validate:"required"`
	Phone     string         `json:"phone" validate:"required,number"`
}

// GeolocationPatch mirrors GeolocationRequest with every field optional.
type GeolocationPatch struct {
	Lat  *string `json:"lat"`
	Long *string `json:"long"`
}

// AddressPatch mirrors AddressRequest with every field optional.
type AddressPatch struct {
	City        *string           `json:"city"`
	Street      *string           `json:"street"`
	Number      *int              `json:"number"`
	Zipcode     *string           `json:"zipcode"`
	Geolocation *GeolocationPatch `json:"geolocation"`
}

// UpdateUserRequest is the validated payload for PUT/PATCH /users/:id.
// Same shape as CreateUserRequest, all fields optional. If a password is
// supplied it is re-hashed before persistence.
type UpdateUserRequest struct {
	Email     *string       `json:"email" validate:"omitempty,email"`
	Username  *string       `json:"username"`
	Password  *string       `json:"password" validate:"omitempty,min=8"`
	Firstname *string       `json:"firstname"`
	Lastname  *string       `json:"lastname"`
	Address   *AddressPatch `json:"address"`
	Phone     *string       `json:"phone" validate:"omitempty,number"`
}

// LoginRequest is the validated payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
