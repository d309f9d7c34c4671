// internal/api/analyses.go
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"admission-workers/internal/common/metrics"
	"admission-workers/internal/models"
	validateprofile "admission-workers/internal/workers/analysis/validate-profile"
)

type createAnalysisRequest struct {
	Profile map[string]interface{} `json:"profile"`
}

type analysisResponse struct {
	AnalysisID string                            `json:"analysisId"`
	Analysis   models.AnalysisResult             `json:"analysis"`
	CreatedAt  time.Time                         `json:"createdAt"`
	Source     string                            `json:"source,omitempty"`
	Warnings   []validateprofile.ValidationError `json:"warnings,omitempty"`
}

// cachedAnalysis mirrors the shape the workflow workers write under
// analysis:<id>, so the API and the workers read each other's cache entries.
type cachedAnalysis struct {
	AnalysisID string                `json:"analysisId"`
	Analysis   models.AnalysisResult `json:"analysis"`
	CreatedAt  time.Time             `json:"createdAt"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body is not valid JSON", err.Error())
		return
	}
	if req.Profile == nil {
		s.writeError(w, http.StatusBadRequest, "PROFILE_VALIDATION_FAILED", "Admission profile failed validation", "profile is required")
		return
	}

	validated, err := s.validator.Execute(r.Context(), &validateprofile.Input{Profile: req.Profile})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "PROFILE_VALIDATION_FAILED", "Admission profile failed validation", err.Error())
		return
	}

	result := s.engine.Analyze(validated.NormalizedProfile)
	analysisID := uuid.New().String()
	createdAt := time.Now().UTC()

	if err := s.storeAnalysis(r.Context(), analysisID, validated.NormalizedProfile, result, createdAt); err != nil {
		s.writeError(w, http.StatusInternalServerError, "DATABASE_INSERT_FAILED", "Analysis could not be stored", err.Error())
		return
	}
	s.cacheAnalysis(r.Context(), analysisID, result, createdAt)

	metrics.AnalysesCompleted.WithLabelValues(
		result.Grades.Overall,
		strconv.FormatBool(result.Simulated),
	).Inc()

	s.logger.Info("analysis created", map[string]interface{}{
		"analysisId":   analysisID,
		"overallGrade": result.Grades.Overall,
		"colleges":     len(result.CollegeChances),
	})

	s.writeJSON(w, http.StatusCreated, analysisResponse{
		AnalysisID: analysisID,
		Analysis:   result,
		CreatedAt:  createdAt,
		Warnings:   validated.Warnings,
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := strings.TrimSpace(chi.URLParam(r, "analysisID"))
	if analysisID == "" {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "analysisId is required", "")
		return
	}

	cacheKey := "analysis:" + analysisID
	if s.redis != nil {
		if val, err := s.redis.Get(r.Context(), cacheKey).Result(); err == nil {
			var cached cachedAnalysis
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				metrics.AnalysisCacheRequests.WithLabelValues("hit").Inc()
				s.writeJSON(w, http.StatusOK, analysisResponse{
					AnalysisID: analysisID,
					Analysis:   cached.Analysis,
					CreatedAt:  cached.CreatedAt,
					Source:     "cache",
				})
				return
			}
		}
		metrics.AnalysisCacheRequests.WithLabelValues("miss").Inc()
	}

	if s.db == nil {
		s.writeError(w, http.StatusNotFound, "ANALYSIS_NOT_FOUND", "Analysis not found", "analysisId: "+analysisID)
		return
	}

	row := s.db.QueryRowContext(r.Context(), `
		SELECT result, created_at FROM analyses WHERE id = $1`, analysisID)

	var resultJSON []byte
	var createdAt time.Time
	if err := row.Scan(&resultJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, http.StatusNotFound, "ANALYSIS_NOT_FOUND", "Analysis not found", "analysisId: "+analysisID)
			return
		}
		s.writeError(w, http.StatusInternalServerError, "QUERY_EXECUTION_FAILED", "Analysis lookup failed", err.Error())
		return
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal(resultJSON, &analysis); err != nil {
		s.writeError(w, http.StatusInternalServerError, "QUERY_EXECUTION_FAILED", "Stored analysis is not valid JSON", err.Error())
		return
	}

	s.cacheAnalysis(r.Context(), analysisID, analysis, createdAt)

	s.writeJSON(w, http.StatusOK, analysisResponse{
		AnalysisID: analysisID,
		Analysis:   analysis,
		CreatedAt:  createdAt,
		Source:     "database",
	})
}

// storeAnalysis runs the same insert the create-analysis-record worker runs.
// A nil DB skips persistence so the API can serve engine-only deployments;
// the id then resolves from cache until the entry expires.
func (s *Server) storeAnalysis(ctx context.Context, analysisID string, profile models.AdmissionProfile, result models.AnalysisResult, createdAt time.Time) error {
	if s.db == nil {
		s.logger.Warn("no database configured, analysis not persisted", map[string]interface{}{
			"analysisId": analysisID,
		})
		return nil
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, profile, result, simulated, overall_grade, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		analysisID,
		profileJSON,
		resultJSON,
		result.Simulated,
		result.Grades.Overall,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	// Audit log entry (non-critical, log error but don't fail)
	auditDetails, err := json.Marshal(map[string]interface{}{
		"analysisId":   analysisID,
		"overallGrade": result.Grades.Overall,
		"simulated":    result.Simulated,
		"source":       "api",
	})
	if err != nil {
		auditDetails = []byte("{}")
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"analysis_created",
		"analysis",
		analysisID,
		auditDetails,
		createdAt.Format(time.RFC3339),
	); err != nil {
		s.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":      err,
			"analysisId": analysisID,
		})
	}

	return nil
}

// cacheAnalysis is write-through and best-effort, same as the analyze-profile
// worker: a cache outage degrades reads to the database path but never fails
// the request.
func (s *Server) cacheAnalysis(ctx context.Context, analysisID string, result models.AnalysisResult, createdAt time.Time) {
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

	if err := s.redis.Set(ctx, "analysis:"+analysisID, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache analysis", map[string]interface{}{
			"analysisId": analysisID,
			"error":      err.Error(),
		})
	}
}
