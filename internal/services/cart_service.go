package services

import (
	"errors"
	"fmt"

	"shopper/internal/models"
	"shopper/internal/repositories"
)

// ErrSlotOutOfRange is returned when a cart operation names a slot outside the
// fixed 0..299 range.
var ErrSlotOutOfRange = errors.New("cart slot out of range")

// CartService handles per-user cart mutation and reads.
//
// Mutations are a read-modify-write of the whole cart map with no conditional
// update: two concurrent mutations for the same user can both read the same
// snapshot and the later write wins, losing one update. This matches the
// store contract the API has always had; closing it requires an atomic
// per-slot increment in the store layer.
type CartService struct {
	userRepo repositories.UserRepository
}

// NewCartService creates a new CartService.
func NewCartService(userRepo repositories.UserRepository) *CartService {
	return &CartService{
		userRepo: userRepo,
	}
}

// AddToCart increments the quantity at the given slot by 1.
func (s *CartService) AddToCart(userID string, slot int) error {
	return s.adjust(userID, slot, 1)
}

// RemoveFromCart decrements the quantity at the given slot by 1. There is no
// floor at zero; quantities may go negative.
func (s *CartService) RemoveFromCart(userID string, slot int) error {
	return s.adjust(userID, slot, -1)
}

// GetCart returns the user's full cart snapshot, zero entries included.
func (s *CartService) GetCart(userID string) (models.Cart, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return user.CartData, nil
}

func (s *CartService) adjust(userID string, slot, delta int) error {
	if !models.ValidSlot(slot) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	cart := user.CartData
	if cart == nil {
		cart = models.NewCart()
	}
	cart[slot] += delta

	if err := s.userRepo.UpdateCart(userID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
