// internal/engine/chance_test.go
package engine

import (
	"strings"
	"testing"

	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func topGrades() models.GradeSet {
	return models.GradeSet{
		Academic:        models.GradeAPlus,
		Extracurricular: models.GradeAPlus,
		Awards:          models.GradeBPlus,
	}
}

func neutralGrades() models.GradeSet {
	return models.GradeSet{
		Academic:        models.GradeBMinus,
		Extracurricular: models.GradeBMinus,
		Awards:          models.GradeBMinus,
	}
}

// ==========================
// Estimate Tests
// ==========================

func TestEstimateChance_StrongProfileAtHarvard(t *testing.T) {
	est := EstimateChance("Harvard University", Features{Major: "Computer Science", GPA: 4.0}, topGrades())

	// 1 base + 12 academic + 7 extracurricular + 1 awards
	assert.Equal(t, 21, est.Percentage)
	assert.Equal(t, models.TierIvyPlus, est.Tier)
	assert.Equal(t, "purple", est.TierColor)
	assert.Equal(t, models.ChanceLow, est.Chance)
	assert.Equal(t, models.ColorRed, est.Color)
	assert.Equal(t, "Harvard University", est.College)
	assert.NotEmpty(t, est.Feedback)
}

func TestEstimateChance_StrongProfileAtOpenSchool(t *testing.T) {
	est := EstimateChance("State University", Features{}, topGrades())

	// 40 base + 20 in grade bonuses; the bare name has no residency match
	assert.Equal(t, 60, est.Percentage)
	assert.Equal(t, models.Tier4, est.Tier)
	assert.Equal(t, models.ChanceMedium, est.Chance)
	assert.Equal(t, models.ColorYellow, est.Color)
}

func TestEstimateChance_FloorClamp(t *testing.T) {
	weak := models.GradeSet{
		Academic:        models.GradeD,
		Extracurricular: models.GradeD,
		Awards:          models.GradeD,
	}

	est := EstimateChance("Yale", Features{}, weak)

	// 1 - 15 - 10 - 3 would go negative without the clamp
	assert.Equal(t, 1, est.Percentage)
	assert.Equal(t, models.ChanceLow, est.Chance)
}

func TestEstimateChance_ResidencyOnPublicSchools(t *testing.T) {
	tests := []struct {
		name      string
		college   string
		residency string
		expected  int
	}{
		{name: "In-state boost", college: "Ohio State University", residency: models.ResidencyInState, expected: 27},
		{name: "Out-of-state penalty on tier2", college: "Ohio State University", residency: models.ResidencyOutOfState, expected: 7},
		{name: "No residency stated", college: "Ohio State University", residency: "", expected: 12},
		{name: "Out-of-state neutral on tier3", college: "Michigan State University", residency: models.ResidencyOutOfState, expected: 25},
		{name: "International neutral", college: "Ohio State University", residency: models.ResidencyInternational, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateChance(tt.college, Features{Residency: tt.residency}, neutralGrades())
			assert.Equal(t, tt.expected, est.Percentage)
		})
	}
}

func TestEstimateChance_ResidencyIgnoredAtPrivateSchools(t *testing.T) {
	inState := EstimateChance("Harvard University", Features{Residency: models.ResidencyInState}, neutralGrades())
	blank := EstimateChance("Harvard University", Features{}, neutralGrades())

	assert.Equal(t, blank.Percentage, inState.Percentage)
}

func TestEstimateChance_SpecialFitAddsFive(t *testing.T) {
	fit := Features{Major: "Computer Science", GPA: 3.95}
	noFit := Features{Major: "History", GPA: 3.95}

	withFit := EstimateChance("MIT", fit, neutralGrades())
	without := EstimateChance("MIT", noFit, neutralGrades())

	assert.Equal(t, without.Percentage+5, withFit.Percentage)
}

// ==========================
// Label Tests
// ==========================

func TestChanceLabel(t *testing.T) {
	tests := []struct {
		pct   int
		label string
		color string
	}{
		{95, models.ChanceHigh, models.ColorGreen},
		{80, models.ChanceHigh, models.ColorGreen},
		{79, models.ChanceMedium, models.ColorYellow},
		{55, models.ChanceMedium, models.ColorYellow},
		{54, models.ChanceLow, models.ColorRed},
		{1, models.ChanceLow, models.ColorRed},
	}

	for _, tt := range tests {
		label, color := ChanceLabel(tt.pct)
		assert.Equal(t, tt.label, label, "pct %d", tt.pct)
		assert.Equal(t, tt.color, color, "pct %d", tt.pct)
	}
}

func TestColorForChance(t *testing.T) {
	assert.Equal(t, models.ColorGreen, ColorForChance("High"))
	assert.Equal(t, models.ColorGreen, ColorForChance("  high  "))
	assert.Equal(t, models.ColorYellow, ColorForChance("Medium"))
	assert.Equal(t, models.ColorRed, ColorForChance("Low"))
	assert.Equal(t, models.ColorRed, ColorForChance("whatever"))
	assert.Equal(t, models.ColorRed, ColorForChance(""))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, clampInt(-27, 1, 95))
	assert.Equal(t, 95, clampInt(140, 1, 95))
	assert.Equal(t, 50, clampInt(50, 1, 95))
	assert.Equal(t, 1, clampInt(1, 1, 95))
	assert.Equal(t, 95, clampInt(95, 1, 95))
}

// ==========================
// Feedback Tests
// ==========================

func TestTierFeedback_BandSelection(t *testing.T) {
	high := tierFeedback("Harvard", models.TierIvyPlus, 21)
	assert.Contains(t, high, "Harvard")
	assert.Contains(t, high, "significant reach")

	low := tierFeedback("Harvard", models.TierIvyPlus, 3)
	assert.Contains(t, low, "most selective")

	safety := tierFeedback("Local College", models.Tier4, 75)
	assert.Contains(t, safety, "likely admit")
}

func TestTierFeedback_EveryTierEveryBand(t *testing.T) {
	tiers := []string{
		models.TierIvyPlus, models.Tier1, models.Tier2, models.Tier3, models.Tier4,
	}

	for _, tier := range tiers {
		for _, pct := range []int{1, 30, 60, 90} {
			text := tierFeedback("Example College", tier, pct)
			assert.NotEmpty(t, text, "tier %s pct %d", tier, pct)
			assert.Contains(t, text, "Example College")
		}
	}
}

// ==========================
// Consistency Properties
// ==========================

func TestEstimateChance_OutputAlwaysConsistent(t *testing.T) {
	gradeLetters := []string{
		models.GradeAPlus, models.GradeBPlus, models.GradeC, models.GradeD,
	}
	colleges := []string{
		"Harvard University", "University of Michigan", "Ohio State University",
		"Michigan State University", "Some Unknown College",
	}

	for _, college := range colleges {
		for _, academic := range gradeLetters {
			for _, extra := range gradeLetters {
				grades := models.GradeSet{
					Academic:        academic,
					Extracurricular: extra,
					Awards:          models.GradeB,
				}
				est := EstimateChance(college, Features{Residency: models.ResidencyInState}, grades)

				assert.GreaterOrEqual(t, est.Percentage, 1)
				assert.LessOrEqual(t, est.Percentage, 95)

				label, color := ChanceLabel(est.Percentage)
				assert.Equal(t, label, est.Chance)
				assert.Equal(t, color, est.Color)
				assert.True(t, strings.Contains(est.Feedback, college))
			}
		}
	}
}
