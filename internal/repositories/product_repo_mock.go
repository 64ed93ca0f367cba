package repositories

import (
	"sort"
	"sync"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Transaction holds the write lock for the whole callback, matching the
// atomicity the GORM implementation gets from a database transaction.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getAll()
}

func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByID(id)
}

func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(product)
}

func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(product)
}

func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(id)
}

func (r *MockProductRepository) CountByCategory(category string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countByCategory(category)
}

func (r *MockProductRepository) CategoryCounts() ([]CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categoryCounts()
}

// Transaction serializes fn against all other access to the repository.
func (r *MockProductRepository) Transaction(fn func(ProductRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&mockProductTx{repo: r})
}

// mockProductTx provides lock-free access for callbacks already holding the lock.
type mockProductTx struct {
	repo *MockProductRepository
}

func (t *mockProductTx) GetAll() ([]models.Product, error)          { return t.repo.getAll() }
func (t *mockProductTx) GetByID(id string) (*models.Product, error) { return t.repo.getByID(id) }
func (t *mockProductTx) Create(p *models.Product) error             { return t.repo.create(p) }
func (t *mockProductTx) Update(p *models.Product) error             { return t.repo.update(p) }
func (t *mockProductTx) Delete(id string) error                     { return t.repo.delete(id) }
func (t *mockProductTx) CountByCategory(c string) (int64, error) {
	return t.repo.countByCategory(c)
}
func (t *mockProductTx) CategoryCounts() ([]CategoryCount, error) { return t.repo.categoryCounts() }
func (t *mockProductTx) Transaction(fn func(ProductRepository) error) error {
	return fn(t)
}

func (r *MockProductRepository) getAll() ([]models.Product, error) {
	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

func (r *MockProductRepository) getByID(id string) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &product, nil
}

func (r *MockProductRepository) create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) update(product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NotFound("product", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

func (r *MockProductRepository) countByCategory(category string) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *MockProductRepository) categoryCounts() ([]CategoryCount, error) {
	byCategory := make(map[string]int64)
	for _, p := range r.products {
		byCategory[p.Category]++
	}
	counts := make([]CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		counts = append(counts, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })
	return counts, nil
}
