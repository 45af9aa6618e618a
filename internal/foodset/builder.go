// Package foodset implements authoring and application of reusable
// food sets (meal templates).
package foodset

import (
	"context"
	"strings"

	"calorics/internal/api"
	"calorics/internal/calc"
	"calorics/internal/catalog"
	"calorics/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Row is one accumulated entry in the builder. The ID is local only;
// the backend assigns nothing until commit. Calories are an estimate
// for display while authoring.
type Row struct {
	ID          uuid.UUID
	FoodID      uint64
	FoodName    string
	ServingDesc string
	Quantity    float64
	Calories    float64
}

// Builder accumulates a named, ordered list of (food, serving,
// quantity) tuples into a reusable set. Nothing is persisted until
// Commit; the builder is independent of the day's entry list.
type Builder struct {
	client api.Client
	logger zerolog.Logger
	rows   []Row
}

// NewBuilder creates an empty food-set builder.
func NewBuilder(client api.Client, logger zerolog.Logger) *Builder {
	return &Builder{
		client: client,
		logger: logger.With().Str("component", "foodset-builder").Logger(),
	}
}

// Append validates the live selection, accumulates it, and clears the
// selection so the form is ready for the next item.
func (b *Builder) Append(sel *catalog.Selection) error {
	if sel == nil || !sel.Complete() {
		return model.ErrIncompleteEntry
	}

	food := sel.Food()
	serving := *sel.Serving()
	quantity := sel.Quantity()

	calories, err := calc.EstimateCalories(food, serving, quantity)
	if err != nil {
		return err
	}

	b.rows = append(b.rows, Row{
		ID:          uuid.New(),
		FoodID:      food.ID,
		FoodName:    food.Name,
		ServingDesc: serving.Description,
		Quantity:    quantity,
		Calories:    calories,
	})
	sel.Clear()

	b.logger.Debug().
		Str("food", food.Name).
		Float64("quantity", quantity).
		Int("rows", len(b.rows)).
		Msg("row appended to set")
	return nil
}

// RemoveAt removes one accumulated row. An out-of-range index is a
// silent no-op.
func (b *Builder) RemoveAt(index int) {
	if index < 0 || index >= len(b.rows) {
		return
	}
	b.rows = append(b.rows[:index], b.rows[index+1:]...)
}

// Rows returns a copy of the accumulated rows in order.
func (b *Builder) Rows() []Row {
	rows := make([]Row, len(b.rows))
	copy(rows, b.rows)
	return rows
}

// Len returns the number of accumulated rows.
func (b *Builder) Len() int {
	return len(b.rows)
}

// Commit submits the accumulated set under the given name. Validation
// failures never reach the backend. On success the accumulator is
// cleared; on failure it is preserved so entered data is not lost.
func (b *Builder) Commit(ctx context.Context, name, description string) (*model.FoodSet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrEmptySetName
	}
	if len(b.rows) == 0 {
		return nil, model.ErrEmptySet
	}

	entries := make([]model.FoodSetEntry, len(b.rows))
	for i, row := range b.rows {
		entries[i] = model.FoodSetEntry{
			FoodID:      row.FoodID,
			ServingDesc: row.ServingDesc,
			Quantity:    row.Quantity,
		}
	}

	set, err := b.client.CreateFoodSet(ctx, model.FoodSetRequest{
		Name:        name,
		Description: description,
		Entries:     entries,
	})
	if err != nil {
		b.logger.Warn().
			Err(err).
			Str("name", name).
			Int("rows", len(b.rows)).
			Msg("failed to commit set, accumulator preserved")
		return nil, err
	}

	b.rows = nil
	b.logger.Info().
		Str("name", set.Name).
		Uint64("set_id", set.ID).
		Int("entries", len(set.Entries)).
		Msg("food set committed")
	return set, nil
}
