package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/pkg/events"
)

// UserService handles business logic related to users.
type UserService struct {
	repo   repositories.UserRepository
	events *events.Client
}

// NewUserService creates a new UserService. The events client may be nil.
func NewUserService(repo repositories.UserRepository, ev *events.Client) *UserService {
	return &UserService{
		repo:   repo,
		events: ev,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers(ctx context.Context, opts repositories.ListOptions) ([]models.User, error) {
	return s.repo.GetAll(ctx, opts)
}

// GetUserByID retrieves a single user by id.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateUser hashes the password and persists a new user.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hash),
		Name: models.Name{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
		},
		Address: models.Address{
			City:    req.Address.City,
			Street:  req.Address.Street,
			Number:  req.Address.Number,
			Zipcode: req.Address.Zipcode,
			Geolocation: models.Geolocation{
				Lat:  req.Address.Geolocation.Lat,
				Long: req.Address.Geolocation.Long,
			},
		},
		Phone: req.Phone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(s.events, "user.created", map[string]interface{}{
		"id":       user.ID.Hex(),
		"username": user.Username,
	})
	return user, nil
}

// UpdateUser applies a partial update, re-hashing the password when one
// is supplied, and returns the post-update user.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	patch := &models.UserPatch{
		Email:     req.Email,
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Address:   req.Address,
		Phone:     req.Phone,
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	return s.repo.Update(ctx, id, patch)
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, "user.deleted", map[string]interface{}{"id": id.Hex()})
	return nil
}
