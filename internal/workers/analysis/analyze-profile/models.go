package analyzeprofile

import (
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

type Input struct {
	AnalysisID        string                   `json:"analysisId,omitempty"`
	NormalizedProfile *models.AdmissionProfile `json:"normalizedProfile,omitempty"`
	Profile           *models.AdmissionProfile `json:"profile,omitempty"`
}

type Output struct {
	AnalysisID string                `json:"analysisId"`
	Analysis   models.AnalysisResult `json:"analysis"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// cachedAnalysis is the JSON shape stored under analysis:<id>. fetch-analysis
// reads the same shape, so the field names must stay in sync.
type cachedAnalysis struct {
	AnalysisID string                `json:"analysisId"`
	Analysis   models.AnalysisResult `json:"analysis"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type ServiceDependencies struct {
	Logger logger.Logger
	Redis  *redis.Client
}
