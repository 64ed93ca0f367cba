package repositories

import "bloomshop/internal/models"

// CategoryCount pairs a category name with its current product count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ProductRepository defines the interface for product data access.
//
// Transaction runs fn against a transaction-bound repository so that capacity
// count queries and the subsequent write commit or roll back as one unit.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	CountByCategory(category string) (int64, error)
	CategoryCounts() ([]CategoryCount, error)
	Transaction(fn func(ProductRepository) error) error
}
