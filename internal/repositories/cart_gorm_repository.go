package repositories

import (
	"errors"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetLines returns a user's cart items joined with their products. Items whose
// product has been removed from the catalog are skipped.
func (r *GORMCartRepository) GetLines(userID string) ([]models.CartLine, error) {
	var items []models.CartItem
	if err := r.db.Order("created_at").Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, &apperrors.StoreError{Op: "list cart items", Cause: err}
	}
	if len(items) == 0 {
		return []models.CartLine{}, nil
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []models.Product
	if err := r.db.Find(&products, "id IN ?", productIDs).Error; err != nil {
		return nil, &apperrors.StoreError{Op: "load cart products", Cause: err}
	}
	productsByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{Item: item, Product: product})
	}
	return lines, nil
}

// GetItemByID retrieves a single cart item by its ID.
func (r *GORMCartRepository) GetItemByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item", id)
		}
		return nil, &apperrors.StoreError{Op: "get cart item", Cause: err}
	}
	return &item, nil
}

// GetItemByUserAndProduct finds the user's existing cart item for a product.
func (r *GORMCartRepository) GetItemByUserAndProduct(userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item", productID)
		}
		return nil, &apperrors.StoreError{Op: "get cart item by product", Cause: err}
	}
	return &item, nil
}

// Create adds a new cart item.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return &apperrors.StoreError{Op: "create cart item", Cause: err}
	}
	return nil
}

// Update saves all fields of an existing cart item.
func (r *GORMCartRepository) Update(item *models.CartItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "update cart item", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item", item.ID)
	}
	return nil
}

// Delete removes a cart item by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "delete cart item", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item", id)
	}
	return nil
}

// DeleteByUserID empties a user's cart. Deleting an already empty cart is not
// an error.
func (r *GORMCartRepository) DeleteByUserID(userID string) error {
	if err := r.db.Delete(&models.CartItem{}, "user_id = ?", userID).Error; err != nil {
		return &apperrors.StoreError{Op: "clear cart", Cause: err}
	}
	return nil
}
