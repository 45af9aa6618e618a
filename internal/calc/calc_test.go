package calc

import (
	"math"
	"testing"

	"calorics/internal/catalog"
	"calorics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApple() *model.Food {
	return &model.Food{
		ID:              1,
		Name:            "Apple",
		CaloriesPer100g: 52,
		ProteinPer100g:  0.3,
		CarbsPer100g:    14,
		FatPer100g:      0.2,
		Servings: []model.Serving{
			{ID: 1, Description: "1 medium", Grams: 182},
			{ID: 2, Description: "100g", Grams: 100},
		},
	}
}

func TestEstimateCalories(t *testing.T) {
	apple := testApple()
	medium := apple.Servings[0]

	tests := []struct {
		name      string
		food      *model.Food
		serving   model.Serving
		quantity  float64
		expected  float64
		expectErr error
	}{
		{
			name:     "One medium apple",
			food:     apple,
			serving:  medium,
			quantity: 1,
			expected: 52.0 / 100 * 182,
		},
		{
			name:     "Fractional serving",
			food:     apple,
			serving:  medium,
			quantity: 0.5,
			expected: 52.0 / 100 * 182 * 0.5,
		},
		{
			name:      "Zero quantity",
			food:      apple,
			serving:   medium,
			quantity:  0,
			expectErr: model.ErrInvalidQuantity,
		},
		{
			name:      "Negative quantity",
			food:      apple,
			serving:   medium,
			quantity:  -1,
			expectErr: model.ErrInvalidQuantity,
		},
		{
			name:      "Serving of a different food",
			food:      apple,
			serving:   model.Serving{Description: "1 cup", Grams: 240},
			quantity:  1,
			expectErr: model.ErrUnknownServing,
		},
		{
			name:      "Nil food",
			food:      nil,
			serving:   medium,
			quantity:  1,
			expectErr: model.ErrIncompleteEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateCalories(tt.food, tt.serving, tt.quantity)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestEstimateCalories_RoundedPreview(t *testing.T) {
	// Apple at 52 kcal/100g, "1 medium" = 182g, quantity 1 previews as
	// 95 kcal once rounded.
	apple := testApple()
	got, err := EstimateCalories(apple, apple.Servings[0], 1)
	require.NoError(t, err)
	assert.Equal(t, 95.0, math.Round(got))
}

func TestEstimateCalories_LinearInQuantity(t *testing.T) {
	apple := testApple()
	medium := apple.Servings[0]

	for _, q := range []float64{0.25, 0.5, 1, 1.75, 3} {
		single, err := EstimateCalories(apple, medium, q)
		require.NoError(t, err)
		double, err := EstimateCalories(apple, medium, 2*q)
		require.NoError(t, err)
		assert.InDelta(t, 2*single, double, 1e-9, "doubling quantity must double calories at q=%v", q)
	}
}

func TestEntryMacros(t *testing.T) {
	food := &model.Food{
		ID:              7,
		CaloriesPer100g: 200,
		ProteinPer100g:  20,
		CarbsPer100g:    10,
		FatPer100g:      4,
	}

	macros := EntryMacros(model.FoodEntry{FoodID: 7, Calories: 100}, food)

	assert.InDelta(t, 10, macros.Protein, 1e-9)
	assert.InDelta(t, 5, macros.Carbs, 1e-9)
	assert.InDelta(t, 2, macros.Fat, 1e-9)
}

func TestEntryMacros_ZeroCalorieBasis(t *testing.T) {
	// A food with a zero calorie figure cannot anchor the ratio; the
	// macros read as zero instead of dividing by zero.
	food := &model.Food{ID: 8, CaloriesPer100g: 0, ProteinPer100g: 20}
	macros := EntryMacros(model.FoodEntry{FoodID: 8, Calories: 50}, food)
	assert.Equal(t, Macros{}, macros)
}

func TestDeriveTargets(t *testing.T) {
	targets := DeriveTargets(80, 2400)

	assert.Equal(t, 2400.0, targets.NeededCalories)
	assert.InDelta(t, 140, targets.ProteinGrams, 1e-9)
	assert.InDelta(t, 520, targets.CarbsGrams, 1e-9)
	assert.InDelta(t, 92, targets.FatGrams, 1e-9)
}

func TestAggregateDaily_EmptyDay(t *testing.T) {
	cat := catalog.New(nil)
	targets := DeriveTargets(80, 2000)

	progress := AggregateDaily(nil, cat, targets)

	assert.Equal(t, 0.0, progress.DailyCalories)
	assert.Equal(t, 0.0, progress.CalorieProgressPercent)
	assert.Equal(t, 0.0, progress.Protein.Percent)
	assert.Equal(t, 0.0, progress.Carbs.Percent)
	assert.Equal(t, 0.0, progress.Fat.Percent)
	assert.False(t, math.IsNaN(progress.CalorieProgressPercent))
}

func TestAggregateDaily_OrderIndependent(t *testing.T) {
	apple := testApple()
	cat := catalog.New([]model.Food{*apple})
	targets := DeriveTargets(80, 2000)

	entries := []model.FoodEntry{
		{ID: 1, FoodID: 1, Calories: 95},
		{ID: 2, FoodID: 1, Calories: 47},
		{ID: 3, FoodID: 1, Calories: 190},
	}
	reversed := []model.FoodEntry{entries[2], entries[1], entries[0]}

	forward := AggregateDaily(entries, cat, targets)
	backward := AggregateDaily(reversed, cat, targets)

	assert.Equal(t, forward, backward)
	assert.InDelta(t, 332, forward.DailyCalories, 1e-9)
	assert.InDelta(t, 332.0/2000*100, forward.CalorieProgressPercent, 1e-9)
}

func TestAggregateDaily_UnresolvedFoodSkipped(t *testing.T) {
	apple := testApple()
	cat := catalog.New([]model.Food{*apple})
	targets := DeriveTargets(80, 2000)

	entries := []model.FoodEntry{
		{ID: 1, FoodID: 1, Calories: 95},
		{ID: 2, FoodID: 999, Calories: 100}, // not in catalog
	}

	progress := AggregateDaily(entries, cat, targets)

	// The cached calories still count; only the macro join is skipped.
	assert.InDelta(t, 195, progress.DailyCalories, 1e-9)
	assert.Equal(t, 1, progress.UnresolvedEntries)

	resolvedOnly := AggregateDaily(entries[:1], cat, targets)
	assert.Equal(t, resolvedOnly.Protein.ConsumedGrams, progress.Protein.ConsumedGrams)
}

func TestAggregateDaily_MacroPercentClamped(t *testing.T) {
	protein := &model.Food{ID: 2, Name: "Whey", CaloriesPer100g: 400, ProteinPer100g: 80}
	cat := catalog.New([]model.Food{*protein})
	// Tiny targets so consumption vastly exceeds them.
	targets := DeriveTargets(10, 2000)

	entries := []model.FoodEntry{{ID: 1, FoodID: 2, Calories: 800}}
	progress := AggregateDaily(entries, cat, targets)

	assert.InDelta(t, 160, progress.Protein.ConsumedGrams, 1e-9)
	assert.Equal(t, 100.0, progress.Protein.Percent)
	// Calorie percent stays unbounded.
	assert.Greater(t, progress.CalorieProgressPercent, 0.0)
}

func TestAggregateDaily_CaloriePercentUnbounded(t *testing.T) {
	apple := testApple()
	cat := catalog.New([]model.Food{*apple})
	targets := DeriveTargets(80, 1000)

	entries := []model.FoodEntry{{ID: 1, FoodID: 1, Calories: 1400}}
	progress := AggregateDaily(entries, cat, targets)

	assert.InDelta(t, 140, progress.CalorieProgressPercent, 1e-9)
}
