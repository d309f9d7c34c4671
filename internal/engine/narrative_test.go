// internal/engine/narrative_test.go
package engine

import (
	"testing"

	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeNarrative_CitesComputedGrades(t *testing.T) {
	grades := models.GradeSet{
		Academic:        models.GradeBPlus,
		Extracurricular: models.GradeAMinus,
		Awards:          models.GradeB,
		Overall:         models.GradeBPlus,
	}
	f := Features{GPA: 3.6, SAT: 1380, ActivityCount: 4, HonorCount: 2}

	assessment, sections := ComposeNarrative(f, grades)

	assert.Contains(t, assessment,
		"Overall profile grade: B+ (Academic B+, Extracurricular A-, Awards B).")

	require.Len(t, sections, 3)
	assert.Equal(t, "Academic Performance", sections[0].Title)
	assert.Equal(t, "Extracurricular Activities", sections[1].Title)
	assert.Equal(t, "Honors & Awards", sections[2].Title)

	// Section grades always echo the grade set
	assert.Equal(t, grades.Academic, sections[0].Grade)
	assert.Equal(t, grades.Extracurricular, sections[1].Grade)
	assert.Equal(t, grades.Awards, sections[2].Grade)
	assert.Contains(t, sections[0].Content, "B+")
	assert.Contains(t, sections[1].Content, "A-")
	assert.Contains(t, sections[2].Content, "B")
}

func TestOverallParagraph_MentionsOnlySubmittedScores(t *testing.T) {
	grades := models.GradeSet{Overall: models.GradeB}

	withSAT := overallParagraph(Features{GPA: 3.85, SAT: 1500}, grades)
	assert.Contains(t, withSAT, "3.85 GPA")
	assert.Contains(t, withSAT, "SAT of 1500")
	assert.NotContains(t, withSAT, "ACT")

	withACT := overallParagraph(Features{GPA: 3.2, ACT: 30}, grades)
	assert.Contains(t, withACT, "ACT of 30")
	assert.NotContains(t, withACT, "SAT")

	neither := overallParagraph(Features{GPA: 3.0}, grades)
	assert.NotContains(t, neither, "SAT")
	assert.NotContains(t, neither, "ACT")
}

func TestOverallParagraph_ToneFollowsBand(t *testing.T) {
	f := Features{GPA: 3.5}

	top := overallParagraph(f, models.GradeSet{Overall: models.GradeAMinus})
	assert.Contains(t, top, "genuinely competitive")

	middle := overallParagraph(f, models.GradeSet{Overall: models.GradeB})
	assert.Contains(t, middle, "room to sharpen")

	bottom := overallParagraph(f, models.GradeSet{Overall: models.GradeCPlus})
	assert.Contains(t, bottom, "focused work")
}

func TestGradeBand(t *testing.T) {
	assert.Equal(t, "A", gradeBand(models.GradeAPlus))
	assert.Equal(t, "A", gradeBand(models.GradeAMinus))
	assert.Equal(t, "B", gradeBand(models.GradeBPlus))
	assert.Equal(t, "B", gradeBand(models.GradeBMinus))
	assert.Equal(t, "C", gradeBand(models.GradeCPlus))
	assert.Equal(t, "C", gradeBand(models.GradeD))
	assert.Equal(t, "C", gradeBand(""))
}

func TestAcademicSection_StrengthsAndWeaknesses(t *testing.T) {
	strong := academicSection(Features{
		GPA: 3.95, WeightedGPA: 4.4, SAT: 1520, APCourses: 9,
	}, models.GradeAPlus)

	assert.Contains(t, strong.Strengths, "Strong unweighted GPA (3.95)")
	assert.Contains(t, strong.Strengths, "Test scores at or above the 95th percentile")
	assert.Contains(t, strong.Strengths, "Heavy advanced course load (9 AP/IB courses)")
	assert.Contains(t, strong.Strengths, "Weighted GPA confirms a demanding schedule")
	assert.Empty(t, strong.Weaknesses)

	weak := academicSection(Features{GPA: 3.0}, models.GradeDPlus)

	assert.Empty(t, weak.Strengths)
	assert.Contains(t, weak.Weaknesses, "GPA below the selective-school range (3.00)")
	assert.Contains(t, weak.Weaknesses, "No standardized test score on file")
	assert.Contains(t, weak.Weaknesses, "Light advanced course load")
}

func TestExtracurricularSection_MajorAlignment(t *testing.T) {
	aligned := extracurricularSection(Features{
		ActivityCount: 4, Major: "Biology", HasMajorRelatedActivities: true,
		HasLeadershipRoles: true, HasLongTermCommitment: true,
	}, models.GradeA)
	assert.Contains(t, aligned.Strengths, "Activities aligned with the intended major")

	unaligned := extracurricularSection(Features{
		ActivityCount: 4, Major: "Biology",
		HasLeadershipRoles: true, HasLongTermCommitment: true,
	}, models.GradeB)
	assert.Contains(t, unaligned.Weaknesses, "Activities do not yet connect to the stated major")

	// No stated major, no alignment note either way
	noMajor := extracurricularSection(Features{
		ActivityCount: 4, HasLeadershipRoles: true, HasLongTermCommitment: true,
	}, models.GradeB)
	assert.NotContains(t, noMajor.Strengths, "Activities aligned with the intended major")
	assert.NotContains(t, noMajor.Weaknesses, "Activities do not yet connect to the stated major")
}

func TestAwardsSection_RecencyOnlyFlaggedWithHonors(t *testing.T) {
	stale := awardsSection(Features{HonorCount: 2, HasStateAwards: true}, models.GradeC)
	assert.Contains(t, stale.Weaknesses, "Most recognition is more than two years old")

	none := awardsSection(Features{}, models.GradeD)
	assert.NotContains(t, none.Weaknesses, "Most recognition is more than two years old")
	assert.Contains(t, none.Weaknesses, "No honors or awards listed")
}
