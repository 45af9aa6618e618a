// Package tracker owns the authoritative client-side list of a day's
// food entries and the mode of the shared entry form.
package tracker

import (
	"context"
	"fmt"
	"sync"

	"calorics/internal/api"
	"calorics/internal/calc"
	"calorics/internal/catalog"
	"calorics/internal/model"

	"github.com/rs/zerolog"
)

// EntryStore holds the entry list for exactly one active date at a
// time. Switching dates triggers a full reload; there is no incremental
// diff across dates.
type EntryStore struct {
	client api.Client
	logger zerolog.Logger

	mu      sync.Mutex
	date    string
	entries []model.FoodEntry
	stats   model.UserStats
	loadGen uint64
}

// NewEntryStore creates an entry store backed by the given client.
func NewEntryStore(client api.Client, logger zerolog.Logger) *EntryStore {
	return &EntryStore{
		client: client,
		logger: logger.With().Str("component", "entry-store").Logger(),
	}
}

// LoadForDate fetches the stats payload for date and replaces the
// store's contents with it. A newer load started while this one is in
// flight wins: a stale response is discarded on arrival, never merged
// into the current view. On failure the prior contents are left
// untouched and the error is surfaced to the caller.
func (s *EntryStore) LoadForDate(ctx context.Context, date string) ([]model.FoodEntry, error) {
	if !model.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}

	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	stats, err := s.client.UserStats(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.loadGen {
		s.logger.Debug().
			Str("date", date).
			Msg("discarding stale load result")
		return nil, nil
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("date", date).Msg("failed to load entries")
		return nil, fmt.Errorf("failed to load entries for %s: %w", date, err)
	}

	s.date = date
	s.stats = *stats
	s.entries = append([]model.FoodEntry(nil), stats.FoodEntries...)

	s.logger.Info().
		Str("date", date).
		Int("entries", len(s.entries)).
		Msg("entries loaded")

	entries := make([]model.FoodEntry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}

// Date returns the date the current contents belong to.
func (s *EntryStore) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

// Entries returns a copy of the current entry list.
func (s *EntryStore) Entries() []model.FoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copied so callers may range over it while the store mutates.
	entries := make([]model.FoodEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Stats returns the last loaded stats payload.
func (s *EntryStore) Stats() model.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// DailyCalories sums the calories of the current entries.
func (s *EntryStore) DailyCalories() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, e := range s.entries {
		total += e.Calories
	}
	return total
}

// Add validates the selection client-side, submits it, and appends the
// server-confirmed entry. The server is authoritative for the final ID
// and calories. On failure the store is unchanged.
func (s *EntryStore) Add(ctx context.Context, food *model.Food, serving model.Serving, quantity float64, date string) (*model.FoodEntry, error) {
	if food == nil {
		return nil, model.ErrIncompleteEntry
	}
	if !catalog.ValidQuantity(quantity) {
		return nil, model.ErrInvalidQuantity
	}
	if !model.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}
	// Resolves the serving against the food before anything is sent.
	if _, err := calc.EstimateCalories(food, serving, quantity); err != nil {
		return nil, err
	}

	entry, err := s.client.CreateEntry(ctx, model.FoodEntryRequest{
		FoodID:      food.ID,
		ServingDesc: serving.Description,
		Quantity:    quantity,
		Date:        date,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Uint64("food_id", food.ID).
			Str("date", date).
			Msg("failed to create entry")
		return nil, err
	}

	s.mu.Lock()
	if s.date == date {
		s.entries = append(s.entries, *entry)
	}
	s.mu.Unlock()

	s.logger.Info().
		Uint64("entry_id", entry.ID).
		Str("food", food.Name).
		Float64("calories", entry.Calories).
		Msg("entry added")

	return entry, nil
}

// Remove deletes an entry optimistically: it leaves local state
// immediately, then the delete request is issued. If the server delete
// fails the local removal is rolled back and the error surfaced, so the
// view never drifts from the backend. Removing an id that is not
// present locally is a no-op.
func (s *EntryStore) Remove(ctx context.Context, entryID uint64) error {
	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.entries[idx]
	date := s.date
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.mu.Unlock()

	if err := s.client.DeleteEntry(ctx, entryID); err != nil {
		s.mu.Lock()
		// Reinsert at the original position only if the view still
		// belongs to the same date and a reload has not already
		// restored the entry. A load that won the race owns the view;
		// the backend still has the entry, so the next load for its
		// date shows it again.
		if s.date == date && !s.containsLocked(entryID) {
			if idx > len(s.entries) {
				idx = len(s.entries)
			}
			s.entries = append(s.entries, model.FoodEntry{})
			copy(s.entries[idx+1:], s.entries[idx:])
			s.entries[idx] = removed
		}
		s.mu.Unlock()

		s.logger.Warn().
			Err(err).
			Uint64("entry_id", entryID).
			Msg("delete failed, local removal rolled back")
		return err
	}

	s.logger.Info().Uint64("entry_id", entryID).Msg("entry removed")
	return nil
}

// containsLocked reports whether an entry id is present. Callers hold
// s.mu.
func (s *EntryStore) containsLocked(entryID uint64) bool {
	for _, e := range s.entries {
		if e.ID == entryID {
			return true
		}
	}
	return false
}

// Progress recomputes the daily progress from the raw entries and the
// last loaded stats. Derived totals are never cached independently.
func (s *EntryStore) Progress(foods calc.FoodIndex) model.DailyProgress {
	s.mu.Lock()
	entries := make([]model.FoodEntry, len(s.entries))
	copy(entries, s.entries)
	stats := s.stats
	s.mu.Unlock()

	targets := calc.DeriveTargets(stats.CurrentWeight, stats.NeededCalories)
	return calc.AggregateDaily(entries, foods, targets)
}
