package repositories

import "shopper/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// UpdateCart overwrites the stored cart for the given user id. The write is
	// unconditional; callers own the read-modify-write sequence.
	UpdateCart(id string, cart models.Cart) error
}
