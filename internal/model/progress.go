package model

// Macro target coefficients in grams per kg of body weight, midpoints of
// clinically-typical ranges.
const (
	ProteinGramsPerKg = 1.75
	CarbsGramsPerKg   = 6.5
	FatGramsPerKg     = 1.15
)

// Goal is the user's weight goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// Text returns the display text for a goal. Unknown goals read as
// maintenance.
func (g Goal) Text() string {
	switch g {
	case GoalLose:
		return "Lose Weight"
	case GoalGain:
		return "Gain Weight"
	default:
		return "Maintain Weight"
	}
}

// DailyTargets holds the calorie and macro goals for a date. Macro
// targets are derived client-side from current body weight; the calorie
// target comes from the profile service.
type DailyTargets struct {
	NeededCalories float64
	ProteinGrams   float64
	CarbsGrams     float64
	FatGrams       float64
}

// MacroProgress compares consumed grams of one macro against its target.
// Percent is clamped to [0,100].
type MacroProgress struct {
	ConsumedGrams float64
	TargetGrams   float64
	Percent       float64
}

// DailyProgress is the derived view comparing consumed vs. target for a
// date. It is recomputed from the raw entries on every change and never
// persisted.
type DailyProgress struct {
	DailyCalories float64
	// CalorieProgressPercent is unbounded and may exceed 100; the excess
	// is rendered as an overflow segment.
	CalorieProgressPercent float64
	Protein                MacroProgress
	Carbs                  MacroProgress
	Fat                    MacroProgress
	// UnresolvedEntries counts entries whose food could not be joined to
	// the catalog. They are skipped, not treated as a failure.
	UnresolvedEntries int
}

// UserStats is the per-date stats payload from the profile service.
// neededCalories, fatPercentage and the body measurements are computed
// server-side and treated as opaque numbers here.
type UserStats struct {
	DailyCalories    float64     `json:"dailyCalories"`
	NeededCalories   float64     `json:"neededCalories"`
	CurrentWeight    float64     `json:"currentWeight"`
	NeckMeasurement  float64     `json:"neckMeasurement"`
	WaistMeasurement float64     `json:"waistMeasurement"`
	FatPercentage    float64     `json:"fatPercentage"`
	Age              int         `json:"age"`
	Goal             Goal        `json:"goal"`
	FoodEntries      []FoodEntry `json:"foodEntries"`
}
