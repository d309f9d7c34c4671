// internal/engine/chance.go
package engine

import (
	"fmt"
	"strings"

	"admission-workers/internal/models"
)

// Base admission percentage by tier. These are the stricter constants; the
// legacy 5/15/30/50/70 set is retired and must not be mixed back in.
var tierBasePercentage = map[string]int{
	models.TierIvyPlus: 1,
	models.Tier1:       4,
	models.Tier2:       12,
	models.Tier3:       25,
	models.Tier4:       40,
}

// Signed percentage adjustments by category grade. Academic swings hardest,
// awards barely move the needle.
var academicBonus = map[string]int{
	models.GradeAPlus: 12, models.GradeA: 10, models.GradeAMinus: 8,
	models.GradeBPlus: 5, models.GradeB: 2, models.GradeBMinus: 0,
	models.GradeCPlus: -3, models.GradeC: -6, models.GradeCMinus: -9,
	models.GradeDPlus: -12, models.GradeD: -15,
}

var extracurricularBonus = map[string]int{
	models.GradeAPlus: 7, models.GradeA: 6, models.GradeAMinus: 5,
	models.GradeBPlus: 3, models.GradeB: 1, models.GradeBMinus: 0,
	models.GradeCPlus: -2, models.GradeC: -4, models.GradeCMinus: -6,
	models.GradeDPlus: -8, models.GradeD: -10,
}

var awardsBonus = map[string]int{
	models.GradeAPlus: 4, models.GradeA: 3, models.GradeAMinus: 2,
	models.GradeBPlus: 1, models.GradeB: 1, models.GradeBMinus: 0,
	models.GradeCPlus: 0, models.GradeC: -1, models.GradeCMinus: -1,
	models.GradeDPlus: -2, models.GradeD: -3,
}

// EstimateChance computes one college's admission estimate from the feature
// bag and category grades. Pure; the caller iterates colleges in input order.
func EstimateChance(college string, f Features, grades models.GradeSet) models.AdmissionEstimate {
	tier := ClassifyTier(college)
	pct := tierBasePercentage[tier]

	// Residency only moves public schools
	if IsPublicUniversity(college) {
		switch f.Residency {
		case models.ResidencyInState:
			pct += 15
		case models.ResidencyOutOfState:
			if tier == models.Tier1 || tier == models.Tier2 {
				pct -= 5
			}
		}
	}

	pct += academicBonus[grades.Academic]
	pct += extracurricularBonus[grades.Extracurricular]
	pct += awardsBonus[grades.Awards]
	pct += SpecialFitBonus(college, f)

	pct = clampInt(pct, 1, 95)
	label, color := ChanceLabel(pct)

	return models.AdmissionEstimate{
		College:    college,
		Tier:       tier,
		TierColor:  TierColor(tier),
		Percentage: pct,
		Chance:     label,
		Color:      color,
		Feedback:   tierFeedback(college, tier, pct),
	}
}

// ChanceLabel classifies a percentage: 80 and up is High, 55 and up Medium.
func ChanceLabel(pct int) (label, color string) {
	switch {
	case pct >= 80:
		return models.ChanceHigh, models.ColorGreen
	case pct >= 55:
		return models.ChanceMedium, models.ColorYellow
	default:
		return models.ChanceLow, models.ColorRed
	}
}

// ColorForChance recovers the color from a chance label. Used when the label
// came from outside the engine and the color cannot be trusted.
func ColorForChance(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case strings.ToLower(models.ChanceHigh):
		return models.ColorGreen
	case strings.ToLower(models.ChanceMedium):
		return models.ColorYellow
	default:
		return models.ColorRed
	}
}

type feedbackBand struct {
	Min  int
	Text string
}

// Per-tier feedback templates, three bands each, highest band first. %s is
// the college name.
var tierFeedbackBands = map[string][]feedbackBand{
	models.TierIvyPlus: {
		{20, "%s is a significant reach, but your profile is stronger than most applicants in this pool. A standout essay and interview could tip the balance."},
		{10, "%s admits only a small fraction of highly qualified applicants. Treat it as a reach and make sure your application tells a distinctive story."},
		{0, "%s is among the most selective schools in the country. Apply if it matters to you, but anchor your list with likelier options."},
	},
	models.Tier1: {
		{35, "%s is within reach for your profile. Strong supplemental essays and demonstrated interest will matter here."},
		{20, "%s is a realistic reach. Your numbers are in the conversation; the rest of the application has to carry you over."},
		{0, "%s is a reach with your current profile. Strengthening academics or a signature achievement would move the needle most."},
	},
	models.Tier2: {
		{45, "%s looks like a solid target for you. Keep your grades steady and apply early in the cycle."},
		{25, "%s is attainable but not assured. A focused application that highlights your strengths will help."},
		{0, "%s is a stretch right now. Raising your test scores or course rigor would improve your odds meaningfully."},
	},
	models.Tier3: {
		{55, "%s should be a comfortable target given your profile. Strong odds if your application is complete and on time."},
		{35, "%s is a reasonable target. Your profile fits the typical admitted range."},
		{0, "%s is within range, though your current profile sits below the typical admit. Shore up the weakest category first."},
	},
	models.Tier4: {
		{70, "%s is a likely admit for you. It can anchor your list as a safety."},
		{50, "%s is a probable admit. Keep it on the list as a dependable option."},
		{0, "%s should be attainable, but no admission is automatic. Submit a complete, polished application."},
	},
}

func tierFeedback(college, tier string, pct int) string {
	bands := tierFeedbackBands[tier]
	for _, b := range bands {
		if pct >= b.Min {
			return fmt.Sprintf(b.Text, college)
		}
	}
	// Unreachable while every tier has a zero band.
	return fmt.Sprintf("Admission odds for %s are estimated at %d%%.", college, pct)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
