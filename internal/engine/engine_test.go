// internal/engine/engine_test.go
package engine

import (
	"testing"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Fixtures
// ==========================

func emptyProfile() models.AdmissionProfile {
	return models.AdmissionProfile{}
}

// strongProfile grades A+/A+/B+ and anchors the end-to-end expectations.
func strongProfile() models.AdmissionProfile {
	return models.AdmissionProfile{
		Academics: models.AcademicRecord{
			GPA:         "4.0",
			WeightedGPA: "4.5",
			SAT:         "1600",
			APCourses:   "12",
			CourseRigor: models.RigorVeryHigh,
		},
		Activities: []models.Activity{
			{Name: "Coding Club", Role: "President", YearsInvolved: "4", HoursPerWeek: "12"},
			{Name: "Math Team", Role: "Member", YearsInvolved: "3", HoursPerWeek: "4"},
			{Name: "Varsity Soccer", Role: "Captain", YearsInvolved: "3", HoursPerWeek: "10"},
			{Name: "Volunteer Tutoring", Role: "Tutor", YearsInvolved: "2", HoursPerWeek: "3"},
			{Name: "School Newspaper", Role: "Writer", YearsInvolved: "2", HoursPerWeek: "2"},
		},
		Honors: []models.Honor{
			{Title: "Math Olympiad Finalist", Level: models.LevelState, Year: "2026"},
			{Title: "Essay Contest Winner", Level: models.LevelState, Year: "2025"},
		},
		Colleges:  []string{"Harvard University", "State University"},
		Major:     "Computer Science",
		Residency: models.ResidencyOutOfState,
	}
}

func newTestEngine(t *testing.T) *Engine {
	return New(Options{CurrentYear: testYear, Logger: logger.NewTestLogger(t)})
}

// ==========================
// Constructor Tests
// ==========================

func TestNew_Defaults(t *testing.T) {
	e := New(Options{})
	assert.Equal(t, time.Now().Year(), e.CurrentYear())

	pinned := New(Options{CurrentYear: testYear})
	assert.Equal(t, testYear, pinned.CurrentYear())
}

// ==========================
// End-to-End Analysis Tests
// ==========================

func TestEngine_Analyze_StrongProfile(t *testing.T) {
	result := newTestEngine(t).Analyze(strongProfile())

	assert.Equal(t, models.GradeAPlus, result.Grades.Academic)
	assert.Equal(t, models.GradeAPlus, result.Grades.Extracurricular)
	assert.Equal(t, models.GradeBPlus, result.Grades.Awards)
	assert.Equal(t, models.GradeA, result.Grades.Overall)

	assert.InDelta(t, 10.5, result.Breakdown.AcademicPoints, 0.0001)
	assert.InDelta(t, 11.0, result.Breakdown.ExtracurricularPoints, 0.0001)
	assert.InDelta(t, 5.0, result.Breakdown.AwardsPoints, 0.0001)
	assert.InDelta(t, 11.4, result.Breakdown.OverallValue, 0.0001)

	require.Len(t, result.CollegeChances, 2)

	harvard := result.CollegeChances[0]
	assert.Equal(t, "Harvard University", harvard.College)
	assert.Equal(t, models.TierIvyPlus, harvard.Tier)
	assert.Equal(t, 21, harvard.Percentage)
	assert.Equal(t, models.ChanceLow, harvard.Chance)
	assert.Equal(t, models.ColorRed, harvard.Color)

	open := result.CollegeChances[1]
	assert.Equal(t, "State University", open.College)
	assert.Equal(t, models.Tier4, open.Tier)
	assert.Equal(t, 60, open.Percentage)
	assert.Equal(t, models.ChanceMedium, open.Chance)
	assert.Equal(t, models.ColorYellow, open.Color)

	// Nothing left to fix except strategy and the major-specific push
	assert.Len(t, result.ImprovementPlan, 4)

	assert.Contains(t, result.OverallAssessment, "Overall profile grade: A")
	require.Len(t, result.Sections, 3)
	assert.False(t, result.Simulated)
}

func TestEngine_Analyze_EmptyProfile(t *testing.T) {
	result := newTestEngine(t).Analyze(emptyProfile())

	// Missing everything still grades; the GPA default carries academics to D+
	assert.Equal(t, models.GradeDPlus, result.Grades.Academic)
	assert.Equal(t, models.GradeD, result.Grades.Extracurricular)
	assert.Equal(t, models.GradeD, result.Grades.Awards)
	assert.Equal(t, models.GradeDPlus, result.Grades.Overall)

	assert.InDelta(t, 2.0, result.Breakdown.OverallValue, 0.0001)

	assert.Empty(t, result.CollegeChances)
	assert.Len(t, result.ImprovementPlan, 10)
	assert.NotEmpty(t, result.OverallAssessment)
	require.Len(t, result.Sections, 3)
}

func TestEngine_Analyze_SkipsBlankColleges(t *testing.T) {
	profile := strongProfile()
	profile.Colleges = []string{"Harvard University", "", "   ", "Yale University"}

	result := newTestEngine(t).Analyze(profile)

	require.Len(t, result.CollegeChances, 2)
	assert.Equal(t, "Harvard University", result.CollegeChances[0].College)
	assert.Equal(t, "Yale University", result.CollegeChances[1].College)
}

func TestEngine_Analyze_PreservesCollegeOrder(t *testing.T) {
	profile := strongProfile()
	profile.Colleges = []string{
		"Some Unknown College", "Harvard University", "Michigan State University",
	}

	result := newTestEngine(t).Analyze(profile)

	require.Len(t, result.CollegeChances, 3)
	for i, college := range profile.Colleges {
		assert.Equal(t, college, result.CollegeChances[i].College)
	}
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	engine := New(Options{CurrentYear: testYear, Logger: logger.NewNoOpLogger()})
	profile := strongProfile()

	first := engine.Analyze(profile)
	second := engine.Analyze(profile)

	assert.Equal(t, first, second)
}

func TestEngine_Analyze_EstimatesAlwaysInRange(t *testing.T) {
	profiles := []models.AdmissionProfile{
		emptyProfile(),
		strongProfile(),
		{
			Academics: models.AcademicRecord{GPA: "2.1"},
			Colleges:  []string{"Harvard University", "Ohio State University", "Local College"},
		},
	}

	engine := New(Options{CurrentYear: testYear, Logger: logger.NewNoOpLogger()})

	for i, profile := range profiles {
		if len(profile.Colleges) == 0 {
			profile.Colleges = []string{"Harvard University", "State University"}
		}
		result := engine.Analyze(profile)
		for _, est := range result.CollegeChances {
			assert.GreaterOrEqual(t, est.Percentage, 1, "profile %d college %s", i, est.College)
			assert.LessOrEqual(t, est.Percentage, 95, "profile %d college %s", i, est.College)

			label, color := ChanceLabel(est.Percentage)
			assert.Equal(t, label, est.Chance)
			assert.Equal(t, color, est.Color)
		}
	}
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkEngine_Analyze(b *testing.B) {
	engine := New(Options{CurrentYear: testYear, Logger: logger.NewNoOpLogger()})
	profile := strongProfile()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Analyze(profile)
	}
}
