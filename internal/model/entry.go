package model

import "time"

// dateLayout is the calendar-day format used throughout the API.
const dateLayout = "2006-01-02"

// FoodEntry is one logged consumption of a Food on a specific date.
// Calories are computed at creation time and cached; they are not
// recomputed if the catalog changes later. The server is authoritative
// for ID and Calories.
type FoodEntry struct {
	ID          uint64  `json:"ID"`
	FoodID      uint64  `json:"food_id"`
	Food        *Food   `json:"food,omitempty"`
	ServingDesc string  `json:"serving_desc"`
	Quantity    float64 `json:"quantity"`
	Calories    float64 `json:"calories"`
	Date        string  `json:"date"`
}

// FoodEntryRequest is the payload for logging a catalog food.
type FoodEntryRequest struct {
	FoodID      uint64  `json:"food_id"`
	ServingDesc string  `json:"serving_desc"`
	Quantity    float64 `json:"quantity"`
	Date        string  `json:"date"`
}

// DirectEntryRequest logs a free-form food by name with explicit
// calories, bypassing the catalog.
type DirectEntryRequest struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Quantity float64 `json:"quantity"`
	Date     string  `json:"date"`
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Today returns the current calendar day in API date format.
func Today() string {
	return time.Now().Format(dateLayout)
}
