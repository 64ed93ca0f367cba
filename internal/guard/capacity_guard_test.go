package guard_test

import (
	"fmt"
	"testing"

	"bloomshop/internal/guard"

	"github.com/stretchr/testify/assert"
)

func TestCapacityGuard_CanCreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		count      int64
		wantAllow  bool
		wantReason string
	}{
		{"empty category", 0, true, ""},
		{"one below capacity", 49, true, ""},
		{"at capacity", 50, false, guard.ReasonCategoryFull},
		{"over capacity", 51, false, guard.ReasonCategoryFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := guard.NewCapacityGuard(&stubCounter{count: tt.count})
			verdict, err := g.CanCreateProduct("Wedding Flowers")
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAllow, verdict.Allowed)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

func TestCapacityGuard_CanMoveProduct(t *testing.T) {
	t.Run("move to category with room", func(t *testing.T) {
		g := guard.NewCapacityGuard(&stubCounter{count: 49})
		verdict, err := g.CanMoveProduct("Birthday Bouquets", "Wedding Flowers")
		assert.NoError(t, err)
		assert.True(t, verdict.Allowed)
	})

	t.Run("move to full category", func(t *testing.T) {
		g := guard.NewCapacityGuard(&stubCounter{count: 50})
		verdict, err := g.CanMoveProduct("Birthday Bouquets", "Wedding Flowers")
		assert.NoError(t, err)
		assert.False(t, verdict.Allowed)
		assert.Equal(t, guard.ReasonCategoryFull, verdict.Reason)
	})

	// Staying in the same category is always a no-op, even when the category
	// is already full.
	t.Run("same category skips the count query", func(t *testing.T) {
		counter := &stubCounter{count: 50}
		g := guard.NewCapacityGuard(counter)
		verdict, err := g.CanMoveProduct("Wedding Flowers", "Wedding Flowers")
		assert.NoError(t, err)
		assert.True(t, verdict.Allowed)
		assert.Zero(t, counter.calls)
	})
}

func TestCapacityGuard_CounterErrorSurfaces(t *testing.T) {
	g := guard.NewCapacityGuard(&stubCounter{err: fmt.Errorf("connection refused")})

	_, err := g.CanCreateProduct("Wedding Flowers")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCapacityGuard_Idempotent(t *testing.T) {
	g := guard.NewCapacityGuard(&stubCounter{count: 50})

	first, err := g.CanCreateProduct("Seasonal Specials")
	assert.NoError(t, err)
	second, err := g.CanCreateProduct("Seasonal Specials")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
