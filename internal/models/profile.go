// internal/models/profile.go
package models

// AdmissionProfile is the validated form submission the engine scores.
// Numeric fields stay strings: the form layer sends strings and the engine
// parses them with fallbacks instead of trusting upstream types.
type AdmissionProfile struct {
	Academics  AcademicRecord `json:"academics"`
	Activities []Activity     `json:"activities"`
	Honors     []Honor        `json:"honors"`
	Colleges   []string       `json:"colleges"`
	Major      string         `json:"major"`
	Residency  string         `json:"residency,omitempty"`
}

type AcademicRecord struct {
	GPA         string `json:"gpa"`
	WeightedGPA string `json:"weightedGpa,omitempty"`
	SAT         string `json:"sat,omitempty"`
	ACT         string `json:"act,omitempty"`
	APCourses   string `json:"apCourses,omitempty"`
	CourseRigor string `json:"courseRigor,omitempty"`
}

type Activity struct {
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	YearsInvolved string `json:"yearsInvolved,omitempty"`
	HoursPerWeek  string `json:"hoursPerWeek,omitempty"`
	Description   string `json:"description,omitempty"`
}

type Honor struct {
	Title string `json:"title"`
	Level string `json:"level,omitempty"`
	Year  string `json:"year,omitempty"`
}

// Course rigor values accepted by the validator.
const (
	RigorLow      = "low"
	RigorModerate = "moderate"
	RigorHigh     = "high"
	RigorVeryHigh = "very_high"
)

// Honor levels, least to most selective.
const (
	LevelSchool        = "school"
	LevelRegional      = "regional"
	LevelState         = "state"
	LevelNational      = "national"
	LevelInternational = "international"
)

// Residency values. An empty residency is treated as out-of-state neutral.
const (
	ResidencyInState       = "in-state"
	ResidencyOutOfState    = "out-of-state"
	ResidencyInternational = "international"
)

// IsEmpty reports whether every field of the activity is blank. Blank rows
// come from unused form slots and are filtered before scoring.
func (a Activity) IsEmpty() bool {
	return a.Name == "" && a.Role == "" && a.YearsInvolved == "" &&
		a.HoursPerWeek == "" && a.Description == ""
}

// IsEmpty reports whether every field of the honor is blank.
func (h Honor) IsEmpty() bool {
	return h.Title == "" && h.Level == "" && h.Year == ""
}
