// internal/workers/analysis/fetch-analysis/models.go
package fetchanalysis

import (
	"time"

	"admission-workers/internal/models"
)

type Input struct {
	AnalysisID string `json:"analysisId"`
}

type Output struct {
	AnalysisID string                `json:"analysisId"`
	Analysis   models.AnalysisResult `json:"analysis"`
	CreatedAt  time.Time             `json:"createdAt"`
	Source     string                `json:"source"`
}

// cachedAnalysis mirrors the payload analyze-profile writes under
// analysis:<id>; the field names must stay in sync with that worker.
type cachedAnalysis struct {
	AnalysisID string                `json:"analysisId"`
	Analysis   models.AnalysisResult `json:"analysis"`
	CreatedAt  time.Time             `json:"createdAt"`
}
