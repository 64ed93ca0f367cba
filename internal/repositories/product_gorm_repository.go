package repositories

import (
	"errors"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, &apperrors.StoreError{Op: "list products", Cause: err}
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, &apperrors.StoreError{Op: "get product", Cause: err}
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return &apperrors.StoreError{Op: "create product", Cause: err}
	}
	return nil
}

// Update saves all fields of an existing product, including zero values.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "update product", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "delete product", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

// CountByCategory counts products currently in a category.
func (r *GORMProductRepository) CountByCategory(category string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category = ?", category).Count(&count).Error; err != nil {
		return 0, &apperrors.StoreError{Op: "count products by category", Cause: err}
	}
	return count, nil
}

// CategoryCounts returns the product count per category, for the admin
// dashboard occupancy view.
func (r *GORMProductRepository) CategoryCounts() ([]CategoryCount, error) {
	var counts []CategoryCount
	err := r.db.Model(&models.Product{}).
		Select("category, count(*) as count").
		Group("category").
		Order("category").
		Scan(&counts).Error
	if err != nil {
		return nil, &apperrors.StoreError{Op: "count products per category", Cause: err}
	}
	return counts, nil
}

// Transaction runs fn against a repository bound to a serializable database
// transaction, so capacity count queries cannot race concurrent writes.
func (r *GORMProductRepository) Transaction(fn func(ProductRepository) error) error {
	return runSerializable(r.db, func(tx *gorm.DB) error {
		return fn(&GORMProductRepository{db: tx})
	})
}
