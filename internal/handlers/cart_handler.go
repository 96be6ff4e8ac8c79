package handlers

import (
	"errors"
	"log"

	"shopper/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the per-user cart. All of its routes
// sit behind the auth middleware, which resolves the user id into the request
// context.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/addtocart", h.HandleAddToCart)
	router.Post("/removefromcart", h.HandleRemoveFromCart)
	router.Post("/getcart", h.HandleGetCart)
}

// CartItemRequest represents the request body for cart mutations.
type CartItemRequest struct {
	ItemID int `json:"itemId"`
}

// HandleAddToCart increments the quantity at the requested slot.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	return h.mutate(c, h.service.AddToCart, "Item added to cart")
}

// HandleRemoveFromCart decrements the quantity at the requested slot.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	return h.mutate(c, h.service.RemoveFromCart, "Item removed from cart")
}

// HandleGetCart returns the user's full cart snapshot.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"errors":  "Please authenticate using a valid token",
		})
	}

	cart, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

func (h *CartHandler) mutate(c *fiber.Ctx, op func(string, int) error, message string) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"errors":  "Please authenticate using a valid token",
		})
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := op(userID, req.ItemID); err != nil {
		if errors.Is(err, services.ErrSlotOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		log.Printf("Error mutating cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}
