package services

import (
	"bloomshop/internal/apperrors"
	"bloomshop/internal/guard"
	"bloomshop/internal/models"
	"bloomshop/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic related to products. Creations and
// category moves are vetted by the capacity guard inside the same transaction
// as the write, so a category can never exceed its capacity even under
// concurrent requests.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and stores a new product. Field validation runs
// first so clearly invalid requests are rejected without a count query.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := validateStruct(s.validate, product); err != nil {
		return err
	}

	return s.repo.Transaction(func(txRepo repositories.ProductRepository) error {
		verdict, err := guard.NewCapacityGuard(txRepo).CanCreateProduct(product.Category)
		if err != nil {
			return err
		}
		if !verdict.Allowed {
			return &apperrors.PolicyDeniedError{Reason: verdict.Reason}
		}
		return txRepo.Create(product)
	})
}

// UpdateProduct validates and saves changes to an existing product. Moving the
// product into another category is subject to that category's capacity;
// staying put is always allowed.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := validateStruct(s.validate, product); err != nil {
		return err
	}

	return s.repo.Transaction(func(txRepo repositories.ProductRepository) error {
		existing, err := txRepo.GetByID(product.ID)
		if err != nil {
			return err
		}

		verdict, err := guard.NewCapacityGuard(txRepo).CanMoveProduct(existing.Category, product.Category)
		if err != nil {
			return err
		}
		if !verdict.Allowed {
			return &apperrors.PolicyDeniedError{Reason: verdict.Reason}
		}

		existing.Name = product.Name
		existing.Description = product.Description
		existing.Price = product.Price
		existing.Category = product.Category
		existing.ImageURL = product.ImageURL
		existing.Stock = product.Stock

		if err := txRepo.Update(existing); err != nil {
			return err
		}
		*product = *existing
		return nil
	})
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// CategoryCounts returns the current product count per category, used by the
// admin dashboard to show occupancy against the capacity limit.
func (s *ProductService) CategoryCounts() ([]repositories.CategoryCount, error) {
	return s.repo.CategoryCounts()
}
