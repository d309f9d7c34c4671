// internal/workers/analysis/fetch-analysis/handler.go
package fetchanalysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "fetch-analysis"
)

var (
	ErrAnalysisNotFound     = errors.New("ANALYSIS_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrAnalysisNotFound) {
			errorCode = "ANALYSIS_NOT_FOUND"
			retries = 0
		} else if errors.Is(err, ErrQueryExecutionFailed) {
			errorCode = "QUERY_EXECUTION_FAILED"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	analysisID := strings.TrimSpace(input.AnalysisID)
	if analysisID == "" {
		return nil, fmt.Errorf("%w: analysisId is required", ErrAnalysisNotFound)
	}

	cacheKey := "analysis:" + analysisID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached cachedAnalysis
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			metrics.AnalysisCacheRequests.WithLabelValues("hit").Inc()
			h.logger.Debug("analysis served from cache", map[string]interface{}{
				"analysisId": analysisID,
			})
			return &Output{
				AnalysisID: analysisID,
				Analysis:   cached.Analysis,
				CreatedAt:  cached.CreatedAt,
				Source:     "cache",
			}, nil
		}
	}
	metrics.AnalysisCacheRequests.WithLabelValues("miss").Inc()

	row := h.db.QueryRowContext(ctx, `
		SELECT result, created_at FROM analyses WHERE id = $1`, analysisID)

	var resultJSON []byte
	var createdAt time.Time
	if err := row.Scan(&resultJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no analysis with id %s", ErrAnalysisNotFound, analysisID)
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal(resultJSON, &analysis); err != nil {
		return nil, fmt.Errorf("%w: stored result is not valid JSON: %v", ErrQueryExecutionFailed, err)
	}

	data, _ := json.Marshal(cachedAnalysis{
		AnalysisID: analysisID,
		Analysis:   analysis,
		CreatedAt:  createdAt,
	})
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	h.logger.Info("analysis fetched from database", map[string]interface{}{
		"analysisId": analysisID,
	})

	return &Output{
		AnalysisID: analysisID,
		Analysis:   analysis,
		CreatedAt:  createdAt,
		Source:     "database",
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

// failJob retries transient query failures and throws a BPMN error for
// terminal ones like a missing analysis.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	if retries > 0 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(fmt.Sprintf("[%s] %s", errorCode, errorMessage)).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
