// internal/workers/analysis/create-analysis-record/models.go
package createanalysisrecord

import "admission-workers/internal/models"

type Input struct {
	AnalysisID        string                   `json:"analysisId"`
	NormalizedProfile *models.AdmissionProfile `json:"normalizedProfile"`
	Analysis          *models.AnalysisResult   `json:"analysis"`
	Simulated         bool                     `json:"simulated"`
}

type Output struct {
	AnalysisID     string `json:"analysisId"`
	AnalysisStatus string `json:"analysisStatus"`
	CreatedAt      string `json:"createdAt"`
}
