// internal/models/analysis.go
package models

// Letter grades on the 11-point scale used by every grader.
const (
	GradeAPlus  = "A+"
	GradeA      = "A"
	GradeAMinus = "A-"
	GradeBPlus  = "B+"
	GradeB      = "B"
	GradeBMinus = "B-"
	GradeCPlus  = "C+"
	GradeC      = "C"
	GradeCMinus = "C-"
	GradeDPlus  = "D+"
	GradeD      = "D"
)

// College selectivity tiers. Unrecognized names fall through to Tier4.
const (
	TierIvyPlus = "ivy-plus"
	Tier1       = "tier1"
	Tier2       = "tier2"
	Tier3       = "tier3"
	Tier4       = "tier4"
)

// Chance labels and their display colors.
const (
	ChanceHigh   = "High"
	ChanceMedium = "Medium"
	ChanceLow    = "Low"

	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// GradeSet carries the three category grades plus the weighted overall.
type GradeSet struct {
	Academic        string `json:"academic"`
	Extracurricular string `json:"extracurricular"`
	Awards          string `json:"awards"`
	Overall         string `json:"overall"`
}

// ScoreBreakdown exposes the per-category point totals behind the grades.
type ScoreBreakdown struct {
	AcademicPoints        float64 `json:"academicPoints"`
	ExtracurricularPoints float64 `json:"extracurricularPoints"`
	AwardsPoints          float64 `json:"awardsPoints"`
	OverallValue          float64 `json:"overallValue"`
}

// AdmissionEstimate is the per-college output. Percentage is always within
// [1,95] and Chance/Color always agree with it.
type AdmissionEstimate struct {
	College    string `json:"college"`
	Tier       string `json:"tier"`
	TierColor  string `json:"tierColor"`
	Percentage int    `json:"percentage"`
	Chance     string `json:"chance"`
	Color      string `json:"color"`
	Feedback   string `json:"feedback"`
}

// AssessmentSection is one category's narrative block.
type AssessmentSection struct {
	Title      string   `json:"title"`
	Grade      string   `json:"grade"`
	Content    string   `json:"content"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// AnalysisResult is the full engine output for one submission. CollegeChances
// preserves the input college order.
type AnalysisResult struct {
	OverallAssessment string              `json:"overallAssessment"`
	Sections          []AssessmentSection `json:"sections"`
	CollegeChances    []AdmissionEstimate `json:"collegeChances"`
	ImprovementPlan   []string            `json:"improvementPlan"`
	Grades            GradeSet            `json:"grades"`
	Breakdown         ScoreBreakdown      `json:"breakdown"`
	Simulated         bool                `json:"simulated"`
	SimulationNote    string              `json:"simulationNote,omitempty"`
}

// AnalysisRecord is the persisted form of a completed analysis.
type AnalysisRecord struct {
	AnalysisID string `json:"analysisId"`
	Profile    string `json:"profile"`
	Result     string `json:"result"`
	Simulated  bool   `json:"simulated"`
	CreatedAt  string `json:"createdAt"`
}
