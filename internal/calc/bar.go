package calc

// Segment kinds for the calorie progress bar.
const (
	SegmentConsumed = "consumed"
	SegmentNeeded   = "needed"
	SegmentExceeded = "exceeded"
)

// Progress-bar colors, matched to the dashboard palette.
const (
	ColorOver  = "#ff4d4d"
	ColorClose = "#ffa500"
	ColorOK    = "#4CAF50"
)

// BarSegment is one rendered slice of the calorie bar. WidthPercent is
// relative to the needed-calories baseline; Calories is the absolute
// kcal amount shown next to the segment.
type BarSegment struct {
	Kind         string
	WidthPercent float64
	Calories     float64
}

// CalorieBar is a pure segment description of calorie progress; it
// holds no state and is recomputed per render.
type CalorieBar struct {
	Segments []BarSegment
}

// RenderCalorieBar maps consumed and needed calories onto bar segments.
// Within budget the bar has a single consumed segment. Past budget it
// has a full-width needed segment plus an overflow segment sized by the
// excess, each carrying its absolute kcal amount.
func RenderCalorieBar(dailyCalories, neededCalories float64) CalorieBar {
	var percent float64
	if neededCalories > 0 {
		percent = dailyCalories / neededCalories * 100
	}

	if percent <= 100 {
		return CalorieBar{Segments: []BarSegment{
			{Kind: SegmentConsumed, WidthPercent: percent, Calories: dailyCalories},
		}}
	}

	return CalorieBar{Segments: []BarSegment{
		{Kind: SegmentNeeded, WidthPercent: 100, Calories: neededCalories},
		{Kind: SegmentExceeded, WidthPercent: percent - 100, Calories: dailyCalories - neededCalories},
	}}
}

// BarColor picks the bar color for a calorie progress percentage:
// red at or past the goal, orange when close, green otherwise.
func BarColor(progressPercent float64) string {
	if progressPercent >= 100 {
		return ColorOver
	}
	if progressPercent >= 80 {
		return ColorClose
	}
	return ColorOK
}
