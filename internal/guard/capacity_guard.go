package guard

import (
	"fmt"

	"bloomshop/internal/models"
)

// ReasonCategoryFull is returned when a category already holds the maximum
// number of products.
const ReasonCategoryFull = "category is full (50 products)"

// CategoryCounter reports how many products currently sit in a category.
type CategoryCounter interface {
	CountByCategory(category string) (int64, error)
}

// CapacityGuard decides whether product creations and category moves are
// permitted given category occupancy.
type CapacityGuard struct {
	counter CategoryCounter
}

// NewCapacityGuard creates a CapacityGuard reading counts from counter.
func NewCapacityGuard(counter CategoryCounter) *CapacityGuard {
	return &CapacityGuard{counter: counter}
}

// CanCreateProduct decides whether a product may be created in category.
func (g *CapacityGuard) CanCreateProduct(category string) (Verdict, error) {
	count, err := g.counter.CountByCategory(category)
	if err != nil {
		return Verdict{}, fmt.Errorf("counting products in category %q: %w", category, err)
	}
	if count >= models.CategoryCapacity {
		return Deny(ReasonCategoryFull), nil
	}
	return Allow(), nil
}

// CanMoveProduct decides whether a product may move between categories.
// Staying in place is always allowed and performs no count query.
func (g *CapacityGuard) CanMoveProduct(oldCategory, newCategory string) (Verdict, error) {
	if oldCategory == newCategory {
		return Allow(), nil
	}
	return g.CanCreateProduct(newCategory)
}
