package handlers

import (
	"fmt"
	"log"

	"shopper/internal/models"
	"shopper/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/addproduct", h.HandleAddProduct)
	router.Post("/removeproduct", h.HandleRemoveProduct)
	router.Get("/allproducts", h.HandleAllProducts)
	router.Get("/newcollections", h.HandleNewCollections)
	router.Get("/popularinwomen", h.HandlePopularInWomen)
}

// AddProductRequest represents the request body for adding a product.
type AddProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Image    string  `json:"image" validate:"required"`
	Category string  `json:"category" validate:"required"`
	NewPrice float64 `json:"new_price" validate:"required,gt=0"`
	OldPrice float64 `json:"old_price" validate:"required,gt=0"`
}

// HandleAddProduct creates a new catalog product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing addproduct request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  validationErrors(err),
		})
	}

	product := models.Product{
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
		NewPrice: req.NewPrice,
		OldPrice: req.OldPrice,
	}
	if err := h.service.AddProduct(&product); err != nil {
		log.Printf("Error adding product %s: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"name":    product.Name,
	})
}

// RemoveProductRequest represents the request body for removing a product.
type RemoveProductRequest struct {
	ID int `json:"id"`
}

// HandleRemoveProduct deletes a product by id. Removing an unknown id still
// responds with success.
func (h *ProductHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	var req RemoveProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing removeproduct request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := h.service.RemoveProduct(req.ID); err != nil {
		log.Printf("Error removing product %d: %v", req.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"id":      req.ID,
	})
}

// HandleAllProducts returns every product.
func (h *ProductHandler) HandleAllProducts(c *fiber.Ctx) error {
	products, err := h.service.AllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleNewCollections returns the latest arrivals view.
func (h *ProductHandler) HandleNewCollections(c *fiber.Ctx) error {
	products, err := h.service.NewCollections()
	if err != nil {
		log.Printf("Error getting new collections: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandlePopularInWomen returns the women's category sample view.
func (h *ProductHandler) HandlePopularInWomen(c *fiber.Ctx) error {
	products, err := h.service.PopularInWomen()
	if err != nil {
		log.Printf("Error getting popular in women: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// validationErrors flattens validator errors into a field→message map for the
// JSON error envelope.
func validationErrors(err error) map[string]string {
	messages := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
