package repositories

import (
	"fmt"
	"sync"

	"shopper/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// Each call is internally consistent but sequences of calls are not
// transactional, matching the real store's behavior.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			user.CartData = cloneCart(u.CartData)
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	user := u
	user.CartData = cloneCart(u.CartData)
	return &user, nil
}

// UpdateCart overwrites the stored cart for the given user id.
func (r *MockUserRepository) UpdateCart(id string, cart models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for cart update", id)
	}
	u.CartData = cloneCart(cart)
	r.users[id] = u
	return nil
}

func cloneCart(cart models.Cart) models.Cart {
	clone := make(models.Cart, len(cart))
	for slot, qty := range cart {
		clone[slot] = qty
	}
	return clone
}
