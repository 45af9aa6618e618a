package catalog

import (
	"testing"

	"calorics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFoods() []model.Food {
	return []model.Food{
		{
			ID:              1,
			Name:            "Apple",
			CaloriesPer100g: 52,
			Servings: []model.Serving{
				{ID: 1, Description: "1 medium", Grams: 182},
			},
		},
		{
			ID:              2,
			Name:            "Chicken Breast",
			CaloriesPer100g: 165,
			Servings: []model.Serving{
				{ID: 2, Description: "1 fillet", Grams: 120},
				{ID: 3, Description: "100g", Grams: 100},
			},
		},
		{
			ID:              3,
			Name:            "Applesauce",
			CaloriesPer100g: 68,
			Servings: []model.Serving{
				{ID: 4, Description: "1 cup", Grams: 246},
			},
		},
	}
}

func TestCatalog_Food(t *testing.T) {
	cat := New(testFoods())

	food, ok := cat.Food(2)
	require.True(t, ok)
	assert.Equal(t, "Chicken Breast", food.Name)

	_, ok = cat.Food(99)
	assert.False(t, ok)
}

func TestCatalog_PreservesSourceOrder(t *testing.T) {
	cat := New(testFoods())

	require.Equal(t, 3, cat.Size())
	names := make([]string, 0, cat.Size())
	for _, f := range cat.Foods() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Apple", "Chicken Breast", "Applesauce"}, names)
}

func TestCatalog_FindServing(t *testing.T) {
	cat := New(testFoods())

	tests := []struct {
		name      string
		foodID    uint64
		desc      string
		wantGrams float64
		expectErr error
	}{
		{
			name:      "Known serving",
			foodID:    2,
			desc:      "1 fillet",
			wantGrams: 120,
		},
		{
			name:      "Serving of another food",
			foodID:    1,
			desc:      "1 fillet",
			expectErr: model.ErrUnknownServing,
		},
		{
			name:      "Unknown food",
			foodID:    42,
			desc:      "1 medium",
			expectErr: model.ErrFoodNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serving, err := cat.FindServing(tt.foodID, tt.desc)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGrams, serving.Grams)
		})
	}
}
