// internal/engine/narrative.go
package engine

import (
	"fmt"
	"strings"

	"admission-workers/internal/models"
)

// gradeBand collapses the 11-letter scale into three phrasing bands.
func gradeBand(grade string) string {
	switch grade {
	case models.GradeAPlus, models.GradeA, models.GradeAMinus:
		return "A"
	case models.GradeBPlus, models.GradeB, models.GradeBMinus:
		return "B"
	default:
		return "C"
	}
}

// ComposeNarrative renders the overall assessment paragraph and the three
// category sections. Every letter grade cited in text comes straight from
// the GradeSet, so narrative and structured output can never drift apart.
func ComposeNarrative(f Features, grades models.GradeSet) (string, []models.AssessmentSection) {
	overall := overallParagraph(f, grades)
	sections := []models.AssessmentSection{
		academicSection(f, grades.Academic),
		extracurricularSection(f, grades.Extracurricular),
		awardsSection(f, grades.Awards),
	}
	return overall, sections
}

func overallParagraph(f Features, grades models.GradeSet) string {
	parts := []string{
		fmt.Sprintf("Overall profile grade: %s (Academic %s, Extracurricular %s, Awards %s).",
			grades.Overall, grades.Academic, grades.Extracurricular, grades.Awards),
	}

	stats := fmt.Sprintf("This assessment reflects a %.2f GPA", f.GPA)
	if f.SAT > 0 {
		stats += fmt.Sprintf(", an SAT of %d", f.SAT)
	}
	if f.ACT > 0 {
		stats += fmt.Sprintf(", an ACT of %d", f.ACT)
	}
	stats += fmt.Sprintf(", %d scored activities, and %d honors.", f.ActivityCount, f.HonorCount)
	parts = append(parts, stats)

	switch gradeBand(grades.Overall) {
	case "A":
		parts = append(parts, "You present a genuinely competitive profile. At this level, outcomes at selective schools turn on essays, recommendations, and fit rather than on further credential-building.")
	case "B":
		parts = append(parts, "You present a solid profile with clear room to sharpen. One or two targeted improvements, ideally in your weakest category, would move every estimate on your list.")
	default:
		parts = append(parts, "Your profile needs focused work before the most selective schools are realistic. The improvement plan below is ordered by impact; start at the top.")
	}

	return strings.Join(parts, " ")
}

func academicSection(f Features, grade string) models.AssessmentSection {
	var strengths, weaknesses []string

	if f.GPA >= 3.7 {
		strengths = append(strengths, fmt.Sprintf("Strong unweighted GPA (%.2f)", f.GPA))
	} else if f.GPA < 3.3 {
		weaknesses = append(weaknesses, fmt.Sprintf("GPA below the selective-school range (%.2f)", f.GPA))
	}
	if f.SAT >= 1450 || f.ACT >= 33 {
		strengths = append(strengths, "Test scores at or above the 95th percentile")
	} else if f.SAT == 0 && f.ACT == 0 {
		weaknesses = append(weaknesses, "No standardized test score on file")
	}
	if f.APCourses >= 7 {
		strengths = append(strengths, fmt.Sprintf("Heavy advanced course load (%d AP/IB courses)", f.APCourses))
	} else if f.APCourses < 3 {
		weaknesses = append(weaknesses, "Light advanced course load")
	}
	if f.WeightedGPA > f.GPA {
		strengths = append(strengths, "Weighted GPA confirms a demanding schedule")
	}

	var content string
	switch gradeBand(grade) {
	case "A":
		content = fmt.Sprintf("Your academic record earns an %s. Numbers in this range clear the first screen everywhere; keep the trend flat or rising through senior year.", grade)
	case "B":
		content = fmt.Sprintf("Your academic record earns a %s. That keeps most schools in play, but the most selective pools will expect either a higher GPA or stronger scores.", grade)
	default:
		content = fmt.Sprintf("Your academic record earns a %s. Academics carry half the overall weight, so this is the category where improvement pays off fastest.", grade)
	}

	return models.AssessmentSection{
		Title:      "Academic Performance",
		Grade:      grade,
		Content:    content,
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}

func extracurricularSection(f Features, grade string) models.AssessmentSection {
	var strengths, weaknesses []string

	if f.HasLeadershipRoles {
		strengths = append(strengths, "Leadership role in at least one activity")
	} else {
		weaknesses = append(weaknesses, "No leadership positions yet")
	}
	if f.HasLongTermCommitment {
		strengths = append(strengths, "Multi-year commitment to an activity")
	} else {
		weaknesses = append(weaknesses, "No activity sustained for three or more years")
	}
	if f.HasSignificantTimeCommitment {
		strengths = append(strengths, "Significant weekly time investment")
	}
	if f.HasMajorRelatedActivities {
		strengths = append(strengths, "Activities aligned with the intended major")
	} else if f.Major != "" {
		weaknesses = append(weaknesses, "Activities do not yet connect to the stated major")
	}
	if f.ActivityCount < 3 {
		weaknesses = append(weaknesses, "Thin activity list")
	}

	var content string
	switch gradeBand(grade) {
	case "A":
		content = fmt.Sprintf("Extracurriculars earn an %s. Depth, leadership, and continuity are all visible here, which is exactly what holistic review rewards.", grade)
	case "B":
		content = fmt.Sprintf("Extracurriculars earn a %s. The foundation is there; a leadership role or a deeper flagship activity would lift this category into the top band.", grade)
	default:
		content = fmt.Sprintf("Extracurriculars earn a %s. Readers want a few sustained, meaningful commitments, and this record does not show them yet.", grade)
	}

	return models.AssessmentSection{
		Title:      "Extracurricular Activities",
		Grade:      grade,
		Content:    content,
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}

func awardsSection(f Features, grade string) models.AssessmentSection {
	var strengths, weaknesses []string

	if f.HasNationalAwards {
		strengths = append(strengths, "National or international recognition")
	} else {
		weaknesses = append(weaknesses, "No national-level recognition")
	}
	if f.HasStateAwards {
		strengths = append(strengths, "State or regional recognition")
	}
	if f.HasRecentAwards {
		strengths = append(strengths, "Recent recognition within the last two years")
	} else if f.HonorCount > 0 {
		weaknesses = append(weaknesses, "Most recognition is more than two years old")
	}
	if f.HasMajorRelatedAwards {
		strengths = append(strengths, "Honors aligned with the intended major")
	}
	if f.HonorCount == 0 {
		weaknesses = append(weaknesses, "No honors or awards listed")
	}

	var content string
	switch gradeBand(grade) {
	case "A":
		content = fmt.Sprintf("Honors earn an %s. External recognition at this level validates the rest of the application and is rare in any pool.", grade)
	case "B":
		content = fmt.Sprintf("Honors earn a %s. The recognition you have is real; scaling one strength to the state or national stage is the natural next step.", grade)
	default:
		content = fmt.Sprintf("Honors earn a %s. This is the lightest-weighted category, but even one credible award would strengthen the whole story.", grade)
	}

	return models.AssessmentSection{
		Title:      "Honors & Awards",
		Grade:      grade,
		Content:    content,
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}
