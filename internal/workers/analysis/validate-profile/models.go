// internal/workers/analysis/validate-profile/models.go
package validateprofile

import "admission-workers/internal/models"

type Input struct {
	Profile map[string]interface{} `json:"profile"`
}

type Output struct {
	IsValid           bool                    `json:"isValid"`
	NormalizedProfile models.AdmissionProfile `json:"normalizedProfile"`
	ValidationErrors  []ValidationError       `json:"validationErrors"`
	Warnings          []ValidationError       `json:"warnings"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// profileSchema is the structural contract for the submitted profile. All
// numeric fields are strings: the form sends strings and scoring parses them
// with fallbacks, so a type mismatch here means a broken client, not a bad
// value.
const profileSchema = `{
  "type": "object",
  "properties": {
    "academics": {
      "type": "object",
      "properties": {
        "gpa":         {"type": "string"},
        "weightedGpa": {"type": "string"},
        "sat":         {"type": "string"},
        "act":         {"type": "string"},
        "apCourses":   {"type": "string"},
        "courseRigor": {"type": "string"}
      }
    },
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name":          {"type": "string"},
          "role":          {"type": "string"},
          "yearsInvolved": {"type": "string"},
          "hoursPerWeek":  {"type": "string"},
          "description":   {"type": "string"}
        }
      }
    },
    "honors": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "level": {"type": "string"},
          "year":  {"type": "string"}
        }
      }
    },
    "colleges":  {"type": "array", "items": {"type": "string"}},
    "major":     {"type": "string"},
    "residency": {"type": "string"}
  }
}`

var validCourseRigor = map[string]bool{
	"low":       true,
	"moderate":  true,
	"high":      true,
	"very_high": true,
}

var validHonorLevel = map[string]bool{
	"school":        true,
	"regional":      true,
	"state":         true,
	"national":      true,
	"international": true,
}

var validResidency = map[string]bool{
	"in-state":      true,
	"out-of-state":  true,
	"international": true,
}
