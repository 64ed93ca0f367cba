package models

import "gorm.io/gorm"

// CartItem is one product line in a user's cart. One row per (user, product);
// adding the same product again increments the quantity.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	ProductID  string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gte=1,lte=100"`
	gorm.Model        // CreatedAt, UpdatedAt, DeletedAt
}

// CartLine is a cart item joined with its product, as returned to clients.
type CartLine struct {
	Item    CartItem `json:"item"`
	Product Product  `json:"product"`
}
