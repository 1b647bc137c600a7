package repositories

import (
	"context"
	"sync"

	"fakestore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It preserves insertion order so list sorting behaves like the store.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
	order []primitive.ObjectID
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[primitive.ObjectID]models.User),
	}
}

// GetAll returns all users in insertion order, honoring sort and limit.
func (r *MockUserRepository) GetAll(_ context.Context, opts ListOptions) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := orderedIDs(r.order, opts)
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, r.users[id])
	}
	return users, nil
}

// GetByID returns a user by its id.
func (r *MockUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetByUsername returns a user by exact username match.
func (r *MockUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if user := r.users[id]; user.Username == username {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a new user.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

// Update applies a partial update and returns the updated user.
func (r *MockUserRepository) Update(_ context.Context, id primitive.ObjectID, patch *models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.Firstname != nil {
		user.Name.Firstname = *patch.Firstname
	}
	if patch.Lastname != nil {
		user.Name.Lastname = *patch.Lastname
	}
	if patch.Address != nil {
		if patch.Address.City != nil {
			user.Address.City = *patch.Address.City
		}
		if patch.Address.Street != nil {
			user.Address.Street = *patch.Address.Street
		}
		if patch.Address.Number != nil {
			user.Address.Number = *patch.Address.Number
		}
		if patch.Address.Zipcode != nil {
			user.Address.Zipcode = *patch.Address.Zipcode
		}
		if patch.Address.Geolocation != nil {
			if patch.Address.Geolocation.Lat != nil {
				user.Address.Geolocation.Lat = *patch.Address.Geolocation.Lat
			}
			if patch.Address.Geolocation.Long != nil {
				user.Address.Geolocation.Long = *patch.Address.Geolocation.Long
			}
		}
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	r.users[id] = user
	return &user, nil
}

// Delete removes a user by its id.
func (r *MockUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// orderedIDs applies sort direction and limit to an insertion-ordered
// id slice.
func orderedIDs(order []primitive.ObjectID, opts ListOptions) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(order))
	copy(ids, order)
	if opts.sortDirection() < 0 {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	if opts.Limit > 0 && int64(len(ids)) > opts.Limit {
		ids = ids[:opts.Limit]
	}
	return ids
}
