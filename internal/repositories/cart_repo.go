package repositories

import "bloomshop/internal/models"

// CartRepository defines the interface for cart item data access.
type CartRepository interface {
	GetLines(userID string) ([]models.CartLine, error)
	GetItemByID(id string) (*models.CartItem, error)
	GetItemByUserAndProduct(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id string) error
	DeleteByUserID(userID string) error
}
