package services

import (
	"errors"
	"fmt"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"
	"bloomshop/internal/repositories"
)

// CartService handles per-user shopping carts. Quantities are bounded by the
// product's current stock at add/update time.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart lines joined with product details.
func (s *CartService) GetCart(userID string) ([]models.CartLine, error) {
	return s.cartRepo.GetLines(userID)
}

// AddItem puts quantity units of a product into the user's cart. Adding a
// product already in the cart increments the existing line instead of
// creating a second one.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &apperrors.ValidationError{Fields: map[string]string{
			"quantity": "quantity must be at least 1",
		}}
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if newQuantity > product.Stock {
		return nil, &apperrors.ValidationError{Fields: map[string]string{
			"quantity": fmt.Sprintf("requested quantity %d exceeds available stock %d", newQuantity, product.Stock),
		}}
	}

	if existing != nil {
		existing.Quantity = newQuantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the quantity of one of the user's cart items.
func (s *CartService) UpdateQuantity(userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &apperrors.ValidationError{Fields: map[string]string{
			"quantity": "quantity must be at least 1",
		}}
	}

	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	// Another user's item is reported as missing rather than forbidden.
	if item.UserID != userID {
		return nil, apperrors.NotFound("cart item", itemID)
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, &apperrors.ValidationError{Fields: map[string]string{
			"quantity": fmt.Sprintf("requested quantity %d exceeds available stock %d", quantity, product.Stock),
		}}
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem removes one of the user's cart items.
func (s *CartService) RemoveItem(userID, itemID string) error {
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return apperrors.NotFound("cart item", itemID)
	}
	return s.cartRepo.Delete(itemID)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteByUserID(userID)
}
