package catalog

import (
	"context"

	"calorics/internal/model"
)

// Loader defines the interface for sourcing the food catalog.
type Loader interface {
	// Load reads the full catalog. Called once per session; the result
	// is immutable afterwards.
	Load(ctx context.Context) (*Catalog, error)
}

// Catalog is a read-only in-memory index of known foods and their
// servings. Foods keep their source order for display.
type Catalog struct {
	foods []model.Food
	byID  map[uint64]*model.Food
}

// New builds a catalog index over the given foods.
func New(foods []model.Food) *Catalog {
	c := &Catalog{
		foods: foods,
		byID:  make(map[uint64]*model.Food, len(foods)),
	}
	for i := range c.foods {
		c.byID[c.foods[i].ID] = &c.foods[i]
	}
	return c
}

// Food returns the food with the given id.
func (c *Catalog) Food(id uint64) (*model.Food, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// Foods returns all foods in source order. Callers must not mutate the
// returned slice.
func (c *Catalog) Foods() []model.Food {
	return c.foods
}

// Size returns the number of foods in the catalog.
func (c *Catalog) Size() int {
	return len(c.foods)
}

// FindServing resolves a serving description against a catalog food.
func (c *Catalog) FindServing(foodID uint64, desc string) (model.Serving, error) {
	f, ok := c.byID[foodID]
	if !ok {
		return model.Serving{}, model.ErrFoodNotFound
	}
	s, ok := f.ServingByDescription(desc)
	if !ok {
		return model.Serving{}, model.ErrUnknownServing
	}
	return s, nil
}
