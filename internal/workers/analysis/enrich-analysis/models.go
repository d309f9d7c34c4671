// internal/workers/analysis/enrich-analysis/models.go
package enrichanalysis

import "admission-workers/internal/models"

type Input struct {
	AnalysisID        string                   `json:"analysisId,omitempty"`
	Analysis          *models.AnalysisResult   `json:"analysis"`
	NormalizedProfile *models.AdmissionProfile `json:"normalizedProfile,omitempty"`
}

type Output struct {
	Analysis  models.AnalysisResult `json:"analysis"`
	Simulated bool                  `json:"simulated"`
	Provider  string                `json:"provider,omitempty"`
}

// enrichmentPayload is the JSON document the model is asked to return. Every
// field is optional; missing pieces keep their deterministic counterparts.
type enrichmentPayload struct {
	OverallAssessment string             `json:"overallAssessment"`
	CollegeChances    []enrichedEstimate `json:"collegeChances"`
	ImprovementPlan   []string           `json:"improvementPlan"`
}

type enrichedEstimate struct {
	College    string `json:"college"`
	Percentage int    `json:"percentage"`
	Feedback   string `json:"feedback"`
}
