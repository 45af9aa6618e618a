// Package calc holds the pure nutrition arithmetic: per-entry calorie
// and macro contributions, and daily aggregation against targets. No
// function here performs I/O or holds state.
package calc

import (
	"calorics/internal/model"
)

// FoodIndex resolves foods by id. *catalog.Catalog satisfies it.
type FoodIndex interface {
	Food(id uint64) (*model.Food, bool)
}

// Macros is a per-entry macro breakdown in grams.
type Macros struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// EstimateCalories converts a selected food, serving and quantity into
// a calorie amount: caloriesPer100g / 100 × serving grams × quantity.
func EstimateCalories(food *model.Food, serving model.Serving, quantity float64) (float64, error) {
	if food == nil {
		return 0, model.ErrIncompleteEntry
	}
	if quantity <= 0 {
		return 0, model.ErrInvalidQuantity
	}
	owned, ok := food.ServingByDescription(serving.Description)
	if !ok || owned.Grams != serving.Grams {
		return 0, model.ErrUnknownServing
	}
	return food.CaloriesPer100g / 100 * serving.Grams * quantity, nil
}

// EntryMacros scales each per-100g macro by the entry's calorie share
// of the food's reference calorie basis. This preserves the ratio
// implied by the serving size without re-deriving grams; it is exact
// when caloriesPer100g matches the macro basis and an approximation
// when the food's calorie figure was rounded.
func EntryMacros(entry model.FoodEntry, food *model.Food) Macros {
	if food == nil || food.CaloriesPer100g == 0 {
		return Macros{}
	}
	share := entry.Calories / food.CaloriesPer100g
	return Macros{
		Protein: food.ProteinPer100g * share,
		Carbs:   food.CarbsPer100g * share,
		Fat:     food.FatPer100g * share,
	}
}

// DeriveTargets computes the day's macro targets from current body
// weight using fixed per-kg coefficients. The calorie target itself is
// profile-service-supplied and passed through untouched.
func DeriveTargets(weightKg, neededCalories float64) model.DailyTargets {
	return model.DailyTargets{
		NeededCalories: neededCalories,
		ProteinGrams:   weightKg * model.ProteinGramsPerKg,
		CarbsGrams:     weightKg * model.CarbsGramsPerKg,
		FatGrams:       weightKg * model.FatGramsPerKg,
	}
}

// AggregateDaily sums one date's entries into calorie and macro
// progress against targets. Summation commutes, so the result is
// independent of entry order. Entries whose food cannot be resolved
// keep their cached calories but contribute no macros; they are counted
// as a rendering gap rather than failing the aggregate. A day with no
// entries yields zero percentages by convention, never NaN.
func AggregateDaily(entries []model.FoodEntry, foods FoodIndex, targets model.DailyTargets) model.DailyProgress {
	var progress model.DailyProgress
	var consumed Macros

	for _, entry := range entries {
		progress.DailyCalories += entry.Calories

		food, ok := foods.Food(entry.FoodID)
		if !ok {
			progress.UnresolvedEntries++
			continue
		}
		m := EntryMacros(entry, food)
		consumed.Protein += m.Protein
		consumed.Carbs += m.Carbs
		consumed.Fat += m.Fat
	}

	hasEntries := len(entries) > 0
	if hasEntries && targets.NeededCalories > 0 {
		progress.CalorieProgressPercent = progress.DailyCalories / targets.NeededCalories * 100
	}

	progress.Protein = macroProgress(consumed.Protein, targets.ProteinGrams, hasEntries)
	progress.Carbs = macroProgress(consumed.Carbs, targets.CarbsGrams, hasEntries)
	progress.Fat = macroProgress(consumed.Fat, targets.FatGrams, hasEntries)
	return progress
}

// macroProgress clamps the percentage to [0,100] and forces 0 for an
// empty day so a 0/0 never surfaces as NaN.
func macroProgress(consumedGrams, targetGrams float64, hasEntries bool) model.MacroProgress {
	p := model.MacroProgress{
		ConsumedGrams: consumedGrams,
		TargetGrams:   targetGrams,
	}
	if !hasEntries || targetGrams <= 0 {
		return p
	}
	percent := consumedGrams / targetGrams * 100
	if percent > 100 {
		percent = 100
	}
	p.Percent = percent
	return p
}
