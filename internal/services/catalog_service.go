package services

import (
	"encoding/json"
	"log"
	"time"

	"shopper/internal/models"
	"shopper/internal/repositories"
	"shopper/pkg/rabbitmq"
)

// newCollectionsLimit and popularInWomenLimit bound the derived catalog views.
const (
	newCollectionsLimit = 8
	popularInWomenLimit = 4
)

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client // optional; nil disables event publishing
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *CatalogService {
	return &CatalogService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// AddProduct assigns the next id and persists the product. The id is computed
// by scanning the full collection for the current maximum (1 when empty).
// This read-then-insert sequence is not atomic: two concurrent adds can race
// for the same id, which the store's primary key will then reject.
func (s *CatalogService) AddProduct(product *models.Product) error {
	products, err := s.repo.GetAll()
	if err != nil {
		return err
	}

	nextID := 1
	for _, p := range products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	product.ID = nextID
	product.Date = time.Now()
	product.Available = true

	if err := s.repo.Create(product); err != nil {
		return err
	}

	s.publishEvent("product.added", product)
	return nil
}

// RemoveProduct deletes the product with the given id. Removing an id that
// does not exist succeeds; the operation is idempotent.
func (s *CatalogService) RemoveProduct(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.removed", map[string]interface{}{"id": id})
	return nil
}

// AllProducts retrieves every product in store order.
func (s *CatalogService) AllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// NewCollections returns the most recently added products, excluding the very
// first product ever inserted and capped at 8. With fewer than 9 products the
// result is shorter, possibly empty.
func (s *CatalogService) NewCollections() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(products) <= 1 {
		return []models.Product{}, nil
	}

	rest := products[1:]
	if len(rest) > newCollectionsLimit {
		rest = rest[len(rest)-newCollectionsLimit:]
	}
	return rest, nil
}

// PopularInWomen returns the first products in the "women" category, capped
// at 4, in store order.
func (s *CatalogService) PopularInWomen() ([]models.Product, error) {
	products, err := s.repo.GetByCategory("women")
	if err != nil {
		return nil, err
	}
	if len(products) > popularInWomenLimit {
		products = products[:popularInWomenLimit]
	}
	return products, nil
}

// publishEvent publishes a catalog change event when a broker is configured.
// Publish failures are logged, never surfaced to the caller.
func (s *CatalogService) publishEvent(event string, payload interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event payload: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
