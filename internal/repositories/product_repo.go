package repositories

import (
	"shopper/internal/models"
)

// ProductRepository defines the interface for product data access.
// Listings are returned in store order (ascending id).
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Create(product *models.Product) error
	// Delete removes the product with the given id. Deleting an id that does
	// not exist is not an error.
	Delete(id int) error
}
