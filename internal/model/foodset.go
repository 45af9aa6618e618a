package model

// FoodSet is a named, reusable template of food-entry tuples. Immutable
// after creation except for whole-set deletion.
type FoodSet struct {
	ID          uint64         `json:"ID"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Entries     []FoodSetEntry `json:"entries"`
}

// FoodSetEntry is one (food, serving, quantity) tuple within a set.
type FoodSetEntry struct {
	FoodID      uint64  `json:"food_id"`
	ServingDesc string  `json:"serving_desc"`
	Quantity    float64 `json:"quantity"`
}

// FoodSetRequest is the payload for creating a food set.
type FoodSetRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Entries     []FoodSetEntry `json:"entries"`
}
