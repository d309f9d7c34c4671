package analyzeprofile

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/engine"
	"admission-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	config *Config
	logger logger.Logger
	engine *engine.Engine
	redis  *redis.Client
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		engine: engine.New(engine.Options{
			CurrentYear: config.CurrentYear,
			Logger:      deps.Logger,
		}),
		redis: deps.Redis,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.NormalizedProfile
	if profile == nil {
		profile = input.Profile
	}
	if profile == nil {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeProfileValidationFailed,
			Message:   "No profile to analyze",
			Details:   "Neither normalizedProfile nor profile is present in the job variables",
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	result := s.engine.Analyze(*profile)

	analysisID := input.AnalysisID
	if analysisID == "" {
		analysisID = uuid.New().String()
	}
	createdAt := time.Now().UTC()

	metrics.AnalysesCompleted.WithLabelValues(
		result.Grades.Overall,
		strconv.FormatBool(result.Simulated),
	).Inc()

	s.cacheResult(ctx, analysisID, result, createdAt)

	s.logger.Info("profile analyzed", map[string]interface{}{
		"analysisId":   analysisID,
		"overallGrade": result.Grades.Overall,
		"colleges":     len(result.CollegeChances),
	})

	return &Output{
		AnalysisID: analysisID,
		Analysis:   result,
		CreatedAt:  createdAt,
	}, nil
}

// cacheResult is write-through and best-effort. A cache outage degrades
// fetch-analysis to its database path but must never fail the analysis job.
func (s *Service) cacheResult(ctx context.Context, analysisID string, result models.AnalysisResult, createdAt time.Time) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(cachedAnalysis{
		AnalysisID: analysisID,
		Analysis:   result,
		CreatedAt:  createdAt,
	})
	if err != nil {
		s.logger.Warn("failed to marshal analysis for cache", map[string]interface{}{
			"analysisId": analysisID,
			"error":      err.Error(),
		})
		return
	}

	if err := s.redis.Set(ctx, "analysis:"+analysisID, data, s.config.CacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache analysis", map[string]interface{}{
			"analysisId": analysisID,
			"error":      err.Error(),
		})
	}
}
