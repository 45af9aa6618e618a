package tracker

import (
	"calorics/internal/foodset"
	"calorics/internal/model"
)

// Mode is the entry form's workflow mode. The three modes share one
// form's fields but are mutually exclusive.
type Mode int

const (
	// ModeSingleEntry logs one food directly against the active date.
	ModeSingleEntry Mode = iota
	// ModeAuthoringSet accumulates entries into an unsent food set.
	ModeAuthoringSet
	// ModeApplyingSet picks a stored set to apply to the active date.
	ModeApplyingSet
)

func (m Mode) String() string {
	switch m {
	case ModeAuthoringSet:
		return "authoring-set"
	case ModeApplyingSet:
		return "applying-set"
	default:
		return "single-entry"
	}
}

// Workflow is a tagged variant over the three form modes. The builder
// is present only while authoring and the set selection only while
// applying, so authoring-and-applying simultaneously is
// unrepresentable.
type Workflow struct {
	mode     Mode
	builder  *foodset.Builder
	applying *model.FoodSet
}

// NewWorkflow starts in single-entry mode.
func NewWorkflow() *Workflow {
	return &Workflow{mode: ModeSingleEntry}
}

// Mode returns the current form mode.
func (w *Workflow) Mode() Mode {
	return w.mode
}

// BeginSetAuthoring switches the form to set authoring with the given
// accumulator, dropping any apply selection.
func (w *Workflow) BeginSetAuthoring(builder *foodset.Builder) {
	w.mode = ModeAuthoringSet
	w.builder = builder
	w.applying = nil
}

// BeginSetApplication switches the form to applying the given stored
// set, dropping any authoring accumulator.
func (w *Workflow) BeginSetApplication(set *model.FoodSet) {
	w.mode = ModeApplyingSet
	w.builder = nil
	w.applying = set
}

// Reset returns the form to single-entry mode.
func (w *Workflow) Reset() {
	w.mode = ModeSingleEntry
	w.builder = nil
	w.applying = nil
}

// Builder returns the authoring accumulator when in authoring mode.
func (w *Workflow) Builder() (*foodset.Builder, bool) {
	return w.builder, w.mode == ModeAuthoringSet
}

// ApplyingSet returns the selected set when in applying mode.
func (w *Workflow) ApplyingSet() (*model.FoodSet, bool) {
	return w.applying, w.mode == ModeApplyingSet
}
