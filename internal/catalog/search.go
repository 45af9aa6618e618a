package catalog

import (
	"strings"

	"calorics/internal/model"
)

// SearchIndex is a substring filter over the catalog keyed by a live
// query string, feeding the food-selection UI.
type SearchIndex struct {
	catalog *Catalog
}

// NewSearchIndex creates a search index over the given catalog.
func NewSearchIndex(c *Catalog) *SearchIndex {
	return &SearchIndex{catalog: c}
}

// Filter returns foods whose name contains the query, case-insensitive,
// in catalog order. An empty query yields no results: the UI shows no
// dropdown rather than hundreds of unfiltered rows.
func (s *SearchIndex) Filter(query string) []model.Food {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var matched []model.Food
	for _, f := range s.catalog.Foods() {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matched = append(matched, f)
		}
	}
	return matched
}

// Selection couples the live query with the chosen food and its derived
// fields. Query and selection are mutually exclusive: picking a food
// clears the query, and editing the query invalidates the food along
// with the serving and quantity derived from it, so a stale
// food/serving pairing can never be submitted.
type Selection struct {
	query    string
	food     *model.Food
	serving  *model.Serving
	quantity float64
}

// SetQuery updates the live query, invalidating any prior selection.
func (sel *Selection) SetQuery(query string) {
	sel.query = query
	sel.food = nil
	sel.serving = nil
	sel.quantity = 0
}

// Query returns the live query string.
func (sel *Selection) Query() string {
	return sel.query
}

// Choose fixes the selection on a food and clears the filtering state.
func (sel *Selection) Choose(food *model.Food) {
	sel.query = ""
	sel.food = food
	sel.serving = nil
	sel.quantity = 0
}

// ChooseServing picks one of the selected food's servings.
func (sel *Selection) ChooseServing(desc string) error {
	if sel.food == nil {
		return model.ErrIncompleteEntry
	}
	s, ok := sel.food.ServingByDescription(desc)
	if !ok {
		return model.ErrUnknownServing
	}
	sel.serving = &s
	return nil
}

// SetQuantity sets the number of servings. Fractional servings are
// allowed down to quarter-serving granularity.
func (sel *Selection) SetQuantity(quantity float64) error {
	if !ValidQuantity(quantity) {
		return model.ErrInvalidQuantity
	}
	sel.quantity = quantity
	return nil
}

// Food returns the selected food, or nil.
func (sel *Selection) Food() *model.Food {
	return sel.food
}

// Serving returns the selected serving, or nil.
func (sel *Selection) Serving() *model.Serving {
	return sel.serving
}

// Quantity returns the selected number of servings.
func (sel *Selection) Quantity() float64 {
	return sel.quantity
}

// Complete reports whether food, serving and quantity are all set.
func (sel *Selection) Complete() bool {
	return sel.food != nil && sel.serving != nil && sel.quantity > 0
}

// Clear resets the selection and query entirely, readying the form for
// the next item.
func (sel *Selection) Clear() {
	sel.query = ""
	sel.food = nil
	sel.serving = nil
	sel.quantity = 0
}

// ValidQuantity reports whether q is a positive multiple of 0.25
// servings, the minimum granularity of the entry forms.
func ValidQuantity(q float64) bool {
	if q <= 0 {
		return false
	}
	scaled := q * 4
	return scaled == float64(int64(scaled))
}
