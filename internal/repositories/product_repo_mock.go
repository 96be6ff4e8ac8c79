package repositories

import (
	"sync"

	"shopper/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in a slice so listings preserve store order.
type MockProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByCategory returns all products in the given category, in insertion order.
func (r *MockProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.Category == category {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, *product)
	return nil
}

// Delete removes the product with the given id. Missing ids are ignored.
func (r *MockProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}
