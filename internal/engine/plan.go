// internal/engine/plan.go
package engine

import "strings"

const maxPlanItems = 10

// majorPlanAdvice maps a major substring to its field-specific plan item,
// evaluated in order, first match wins. No match means no item.
var majorPlanAdvice = []struct {
	Major string
	Text  string
}{
	{"computer", "MAJOR-SPECIFIC: Build and publish real software projects. A GitHub portfolio with two or three substantial projects, a personal site, or a published app carries more weight with CS admissions readers than another club membership."},
	{"engineer", "MAJOR-SPECIFIC: Join or start a robotics or maker team and compete. Documented design-build-test experience (FIRST, VEX, or an independent build log) is the strongest signal for engineering programs."},
	{"biology", "MAJOR-SPECIFIC: Pursue hands-on research. Email local university labs about summer positions, enter a science fair with an original project, or take on an independent study with a mentor."},
	{"business", "MAJOR-SPECIFIC: Start something small and run it. A real venture, however modest, plus DECA or FBLA competition experience demonstrates the initiative business programs screen for."},
	{"art", "MAJOR-SPECIFIC: Invest in your portfolio. Fifteen to twenty finished pieces showing range and a consistent voice matter more to art programs than any test score."},
}

// BuildPlan produces the ordered improvement checklist. Rules run top to
// bottom, generic application-strategy and list-balance items always append,
// and the result is silently truncated to the first ten entries.
func BuildPlan(f Features) []string {
	var plan []string

	if f.GPA < 3.5 {
		plan = append(plan, "ACADEMIC: Raise your unweighted GPA above 3.5. Grade trend matters, so a strong junior and senior year can offset earlier results.")
	}
	if f.SAT == 0 && f.ACT == 0 {
		plan = append(plan, "ACADEMIC: Take the SAT or ACT. Most selective schools still weigh scores, and applying without any score limits your options.")
	}
	if (f.SAT > 0 && f.SAT < 1400) || (f.ACT > 0 && f.ACT < 32) {
		plan = append(plan, "ACADEMIC: Retake your standardized test after a focused prep block. Aim for 1400+ SAT or 32+ ACT to stay competitive at selective schools.")
	}
	if f.APCourses < 5 {
		plan = append(plan, "ACADEMIC: Add AP, IB, or honors courses next term. Admissions readers look for the most demanding schedule your school offers.")
	}

	if f.ActivityCount < 3 {
		plan = append(plan, "EXTRACURRICULAR: Commit to at least three meaningful activities. Depth beats breadth, but a list this short reads as disengagement.")
	}
	if !f.HasLeadershipRoles {
		plan = append(plan, "EXTRACURRICULAR: Pursue a leadership position in an activity you already care about. Founding something counts double.")
	}
	if !f.HasLongTermCommitment {
		plan = append(plan, "EXTRACURRICULAR: Stick with your best activity for multiple years. Sustained commitment signals more than a long list of one-year memberships.")
	}
	if f.Major != "" && !f.HasMajorRelatedActivities {
		plan = append(plan, "EXTRACURRICULAR: Add an activity connected to your intended major. Colleges look for evidence you have tested your stated interest.")
	}

	if f.HonorCount == 0 {
		plan = append(plan, "HONORS: Enter competitions in your strongest subject. Even school-level recognition starts the record admissions offices want to see.")
	}
	if f.HonorCount > 0 && !f.HasNationalAwards {
		plan = append(plan, "HONORS: Scale an existing strength to state or national competition. One national-level result outweighs several local ones.")
	}
	if f.HonorCount > 0 && !f.HasRecentAwards {
		plan = append(plan, "HONORS: Earn a recent award. Recognition older than two years reads as history, not current achievement.")
	}

	plan = append(plan,
		"APPLICATION: Draft your personal essay early and revise it at least three times. A specific, personal story beats an impressive-sounding generic one.",
		"APPLICATION: Line up recommenders before fall. Choose teachers who know your work well, and give them your activity list and goals.",
		"COLLEGE SELECTION: Balance your list with reach, target, and likely schools. Two or three in each band protects you from a shutout.",
	)

	major := strings.ToLower(f.Major)
	if major != "" {
		for _, advice := range majorPlanAdvice {
			if strings.Contains(major, advice.Major) {
				plan = append(plan, advice.Text)
				break
			}
		}
	}

	if len(plan) > maxPlanItems {
		plan = plan[:maxPlanItems]
	}
	return plan
}
