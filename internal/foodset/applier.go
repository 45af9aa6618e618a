package foodset

import (
	"context"

	"calorics/internal/api"
	"calorics/internal/model"

	"github.com/rs/zerolog"
)

// Applier holds the in-memory listing of stored food sets and applies
// them to dates.
type Applier struct {
	client api.Client
	logger zerolog.Logger
	sets   []model.FoodSet
}

// NewApplier creates a food-set applier.
func NewApplier(client api.Client, logger zerolog.Logger) *Applier {
	return &Applier{
		client: client,
		logger: logger.With().Str("component", "foodset-applier").Logger(),
	}
}

// Refresh reloads the set listing from the backend.
func (a *Applier) Refresh(ctx context.Context) error {
	sets, err := a.client.FoodSets(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to list food sets")
		return err
	}
	a.sets = sets
	a.logger.Debug().Int("sets", len(sets)).Msg("food set listing refreshed")
	return nil
}

// Sets returns the current in-memory listing.
func (a *Applier) Sets() []model.FoodSet {
	sets := make([]model.FoodSet, len(a.sets))
	copy(sets, a.sets)
	return sets
}

// Set returns the listed set with the given id.
func (a *Applier) Set(id uint64) (*model.FoodSet, bool) {
	for i := range a.sets {
		if a.sets[i].ID == id {
			return &a.sets[i], true
		}
	}
	return nil, false
}

// Apply asks the backend to materialise every entry of the set as food
// entries dated date. The response carries no entries; the caller must
// reload the date's store to see them.
func (a *Applier) Apply(ctx context.Context, setID uint64, date string) error {
	if !model.ValidDate(date) {
		return model.ErrInvalidDate
	}

	if err := a.client.ApplyFoodSet(ctx, setID, date); err != nil {
		if model.IsNotFound(err) {
			a.logger.Warn().Uint64("set_id", setID).Msg("food set no longer exists")
			return model.ErrFoodSetNotFound
		}
		a.logger.Warn().
			Err(err).
			Uint64("set_id", setID).
			Str("date", date).
			Msg("failed to apply food set")
		return err
	}

	a.logger.Info().
		Uint64("set_id", setID).
		Str("date", date).
		Msg("food set applied")
	return nil
}

// Delete removes a set permanently. The in-memory listing is updated
// only on success; on failure it is unchanged.
func (a *Applier) Delete(ctx context.Context, setID uint64) error {
	if err := a.client.DeleteFoodSet(ctx, setID); err != nil {
		a.logger.Warn().Err(err).Uint64("set_id", setID).Msg("failed to delete food set")
		return err
	}

	for i := range a.sets {
		if a.sets[i].ID == setID {
			a.sets = append(a.sets[:i], a.sets[i+1:]...)
			break
		}
	}

	a.logger.Info().Uint64("set_id", setID).Msg("food set deleted")
	return nil
}
