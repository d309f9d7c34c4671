// internal/engine/features.go
package engine

import (
	"strconv"
	"strings"

	"admission-workers/internal/models"
)

// Features is the flat signal bag derived from one profile. Every downstream
// component (graders, chance calculator, plan, narrative) reads from here so
// the derivations happen exactly once per submission.
type Features struct {
	GPA         float64
	WeightedGPA float64
	SAT         int
	ACT         int
	APCourses   int
	CourseRigor string

	ActivityCount int
	HonorCount    int

	HasLeadershipRoles           bool
	HasLongTermCommitment        bool
	HasSignificantTimeCommitment bool
	HasMajorRelatedActivities    bool
	HasMajorRelatedAwards        bool

	HasNationalAwards bool
	HasStateAwards    bool
	HasRecentAwards   bool

	Major     string
	Residency string
}

var leadershipRoles = []string{
	"president", "leader", "captain", "founder",
	"director", "editor", "manager", "chair",
}

// majorKeywords maps a major substring to the activity/honor keywords that
// count as related to it. Evaluated in order, first matching major wins;
// overlapping keys ("art" inside "liberal arts") depend on this order.
var majorKeywords = []struct {
	Major    string
	Keywords []string
}{
	{"computer", []string{"tech", "coding", "programming", "software"}},
	{"engineer", []string{"robot", "design", "build"}},
	{"biology", []string{"lab", "science", "research"}},
	{"business", []string{"entrepreneur", "marketing", "finance"}},
	{"art", []string{"design", "draw", "paint", "portfolio"}},
}

// ExtractFeatures derives the feature bag from a profile. currentYear drives
// the award recency check and must be injected so results are reproducible.
func ExtractFeatures(p models.AdmissionProfile, currentYear int) Features {
	activities := filterActivities(p.Activities)
	honors := filterHonors(p.Honors)

	f := Features{
		GPA:         parseFloat(p.Academics.GPA, 3.0),
		WeightedGPA: parseFloat(p.Academics.WeightedGPA, 0),
		SAT:         parseCount(p.Academics.SAT),
		ACT:         parseCount(p.Academics.ACT),
		APCourses:   parseCount(p.Academics.APCourses),
		CourseRigor: strings.TrimSpace(strings.ToLower(p.Academics.CourseRigor)),

		ActivityCount: len(activities),
		HonorCount:    len(honors),

		Major:     strings.TrimSpace(p.Major),
		Residency: strings.TrimSpace(strings.ToLower(p.Residency)),
	}

	for _, a := range activities {
		role := strings.ToLower(a.Role)
		for _, kw := range leadershipRoles {
			if strings.Contains(role, kw) {
				f.HasLeadershipRoles = true
				break
			}
		}
		if parseFloat(a.YearsInvolved, 0) >= 3 {
			f.HasLongTermCommitment = true
		}
		if parseFloat(a.HoursPerWeek, 0) >= 10 {
			f.HasSignificantTimeCommitment = true
		}
		if relatedToMajor(a.Name+" "+a.Description, f.Major) {
			f.HasMajorRelatedActivities = true
		}
	}

	for _, h := range honors {
		switch strings.TrimSpace(strings.ToLower(h.Level)) {
		case models.LevelNational, models.LevelInternational:
			f.HasNationalAwards = true
		case models.LevelState, models.LevelRegional:
			f.HasStateAwards = true
		}
		if year := parseCount(h.Year); year >= currentYear-2 && year > 0 {
			f.HasRecentAwards = true
		}
		if relatedToMajor(h.Title, f.Major) {
			f.HasMajorRelatedAwards = true
		}
	}

	return f
}

func filterActivities(in []models.Activity) []models.Activity {
	out := make([]models.Activity, 0, len(in))
	for _, a := range in {
		if !a.IsEmpty() {
			out = append(out, a)
		}
	}
	return out
}

func filterHonors(in []models.Honor) []models.Honor {
	out := make([]models.Honor, 0, len(in))
	for _, h := range in {
		if !h.IsEmpty() {
			out = append(out, h)
		}
	}
	return out
}

// relatedToMajor reports whether free text mentions the major itself or any
// of its mapped keywords. Empty majors relate to nothing.
func relatedToMajor(text, major string) bool {
	major = strings.ToLower(strings.TrimSpace(major))
	if major == "" {
		return false
	}
	text = strings.ToLower(text)
	if strings.Contains(text, major) {
		return true
	}
	for _, set := range majorKeywords {
		if !strings.Contains(major, set.Major) {
			continue
		}
		for _, kw := range set.Keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
	return false
}

// parseFloat reads a form number. Commas are stripped; blanks, garbage, and
// negatives fall back.
func parseFloat(raw string, fallback float64) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fallback
	}
	if v < 0 {
		return fallback
	}
	return v
}

// parseCount is parseFloat truncated to a non-negative int, defaulting to 0.
func parseCount(raw string) int {
	return int(parseFloat(raw, 0))
}
