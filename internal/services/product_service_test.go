package services_test

import (
	"fmt"
	"sync"
	"testing"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/guard"
	"bloomshop/internal/models"
	"bloomshop/internal/repositories"
	"bloomshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of
// repositories.ProductRepository. Transaction runs the callback against the
// mock itself.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByCategory(category string) (int64, error) {
	args := m.Called(category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CategoryCounts() ([]repositories.CategoryCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CategoryCount), args.Error(1)
}

func (m *MockProductRepository) Transaction(fn func(repositories.ProductRepository) error) error {
	return fn(m)
}

func validProduct(category string) *models.Product {
	return &models.Product{
		Name:        "Red Rose Bouquet",
		Description: "A beautiful bouquet of red roses, perfect for romantic occasions.",
		Price:       49.99,
		Category:    category,
		ImageURL:    "https://example.com/images/red-roses.jpg",
		Stock:       10,
	}
}

func TestProductService_CreateProduct_AllowedBelowCapacity(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("CountByCategory", "Wedding Flowers").Return(int64(49), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	err := service.CreateProduct(validProduct("Wedding Flowers"))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_DeniedAtCapacity(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("CountByCategory", "Wedding Flowers").Return(int64(50), nil).Once()

	err := service.CreateProduct(validProduct("Wedding Flowers"))
	var denied *apperrors.PolicyDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, guard.ReasonCategoryFull, denied.Reason)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

// A different category with room is unaffected by a full one.
func TestProductService_CreateProduct_OtherCategoryStillOpen(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("CountByCategory", "Birthday Bouquets").Return(int64(3), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	err := service.CreateProduct(validProduct("Birthday Bouquets"))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Out-of-range fields are rejected before any count query runs.
func TestProductService_CreateProduct_ValidationBeforeCountQuery(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Product)
		wantField string
	}{
		{"price below minimum", func(p *models.Product) { p.Price = 0.99 }, "Price"},
		{"price above maximum", func(p *models.Product) { p.Price = 1000.00 }, "Price"},
		{"description too short", func(p *models.Product) { p.Description = "too short" }, "Description"},
		{"image url too short", func(p *models.Product) { p.ImageURL = "x.jpg" }, "ImageURL"},
		{"stock above maximum", func(p *models.Product) { p.Stock = 101 }, "Stock"},
		{"missing category", func(p *models.Product) { p.Category = "" }, "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo)

			product := validProduct("Wedding Flowers")
			tt.mutate(product)

			err := service.CreateProduct(product)
			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.wantField)
			mockRepo.AssertNotCalled(t, "CountByCategory", mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestProductService_CreateProduct_MidRangePriceAllowed(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := validProduct("Wedding Flowers")
	product.Price = 500.00

	mockRepo.On("CountByCategory", "Wedding Flowers").Return(int64(49), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	err := service.CreateProduct(product)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Updating a product without moving it never queries category occupancy, so
// edits keep working even when the category is full.
func TestProductService_UpdateProduct_SameCategorySkipsCount(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := validProduct("Wedding Flowers")
	existing.ID = "prod-1"
	mockRepo.On("GetByID", "prod-1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	updated := validProduct("Wedding Flowers")
	updated.ID = "prod-1"
	updated.Price = 59.99

	err := service.UpdateProduct(updated)
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "CountByCategory", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_MoveToFullCategoryDenied(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := validProduct("Birthday Bouquets")
	existing.ID = "prod-1"
	mockRepo.On("GetByID", "prod-1").Return(existing, nil).Once()
	mockRepo.On("CountByCategory", "Wedding Flowers").Return(int64(50), nil).Once()

	moved := validProduct("Wedding Flowers")
	moved.ID = "prod-1"

	err := service.UpdateProduct(moved)
	var denied *apperrors.PolicyDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, guard.ReasonCategoryFull, denied.Reason)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_MoveToOpenCategoryAllowed(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := validProduct("Birthday Bouquets")
	existing.ID = "prod-1"
	mockRepo.On("GetByID", "prod-1").Return(existing, nil).Once()
	mockRepo.On("CountByCategory", "Wedding Flowers").Return(int64(12), nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	moved := validProduct("Wedding Flowers")
	moved.ID = "prod-1"

	err := service.UpdateProduct(moved)
	assert.NoError(t, err)
	assert.Equal(t, "Wedding Flowers", moved.Category)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", "prod-99").Return(nil, apperrors.NotFound("product", "prod-99")).Once()

	missing := validProduct("Wedding Flowers")
	missing.ID = "prod-99"

	err := service.UpdateProduct(missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", "prod-1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("prod-1"))

	mockRepo.On("Delete", "prod-99").Return(apperrors.NotFound("product", "prod-99")).Once()
	assert.ErrorIs(t, service.DeleteProduct("prod-99"), apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CategoryCounts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := []repositories.CategoryCount{
		{Category: "Birthday Bouquets", Count: 3},
		{Category: "Wedding Flowers", Count: 50},
	}
	mockRepo.On("CategoryCounts").Return(expected, nil).Once()

	counts, err := service.CategoryCounts()
	assert.NoError(t, err)
	assert.Equal(t, expected, counts)
	mockRepo.AssertExpectations(t)
}

// Concurrent creations into a nearly full category must stop exactly at the
// capacity limit.
func TestProductService_ConcurrentCreatesRespectCapacity(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)

	for i := 0; i < 48; i++ {
		product := validProduct("Wedding Flowers")
		product.ID = fmt.Sprintf("seed-%d", i)
		err := repo.Create(product)
		assert.NoError(t, err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var denials int
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := service.CreateProduct(validProduct("Wedding Flowers")); err != nil {
				var denied *apperrors.PolicyDeniedError
				assert.ErrorAs(t, err, &denied)
				mu.Lock()
				denials++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	count, err := repo.CountByCategory("Wedding Flowers")
	assert.NoError(t, err)
	assert.Equal(t, int64(models.CategoryCapacity), count)
	assert.Equal(t, attempts-2, denials)
}
