package model

// Food represents a catalog food with nutrition expressed per 100 grams.
// Foods are immutable once loaded for the session.
type Food struct {
	ID              uint64    `json:"ID"`
	Name            string    `json:"name"`
	CaloriesPer100g float64   `json:"caloriesPer100g"`
	ProteinPer100g  float64   `json:"proteinPer100g"`
	CarbsPer100g    float64   `json:"carbsPer100g"`
	FatPer100g      float64   `json:"fatPer100g"`
	Servings        []Serving `json:"servings"`
}

// Serving is a named, fixed-gram quantity of a Food, e.g. "1 medium" = 182 g.
// Descriptions are unique within their Food.
type Serving struct {
	ID          uint64  `json:"ID"`
	Description string  `json:"description"`
	Grams       float64 `json:"grams"`
}

// ServingByDescription returns the serving with the given description,
// or false if the food has no such serving.
func (f *Food) ServingByDescription(desc string) (Serving, bool) {
	for _, s := range f.Servings {
		if s.Description == desc {
			return s, true
		}
	}
	return Serving{}, false
}
