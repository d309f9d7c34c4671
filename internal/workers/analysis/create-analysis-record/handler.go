// internal/workers/analysis/create-analysis-record/handler.go
package createanalysisrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admission-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-analysis-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateAnalysis    = errors.New("DUPLICATE_ANALYSIS")
	ErrAnalysisMissing      = errors.New("ANALYSIS_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateAnalysis) {
			errorCode = "DUPLICATE_ANALYSIS"
			retries = 0
		} else if errors.Is(err, ErrAnalysisMissing) {
			errorCode = "ANALYSIS_FAILED"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Analysis == nil {
		return nil, fmt.Errorf("%w: no analysis to persist", ErrAnalysisMissing)
	}

	analysisID := input.AnalysisID
	if analysisID == "" {
		analysisID = uuid.New().String()
	}

	// Duplicate check keeps workflow retries from double-inserting
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM analyses
			WHERE id = $1
		)`, analysisID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: analysis %s already stored", ErrDuplicateAnalysis, analysisID)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)

	profileJSON, err := json.Marshal(input.NormalizedProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal profile: %v", ErrDatabaseInsertFailed, err)
	}
	resultJSON, err := json.Marshal(input.Analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal analysis: %v", ErrDatabaseInsertFailed, err)
	}

	simulated := input.Simulated || input.Analysis.Simulated

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, profile, result, simulated, overall_grade, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		analysisID,
		profileJSON,
		resultJSON,
		simulated,
		input.Analysis.Grades.Overall,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit log entry (non-critical, log error but don't fail)
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"analysisId":   analysisID,
		"overallGrade": input.Analysis.Grades.Overall,
		"simulated":    simulated,
		"colleges":     len(input.Analysis.CollegeChances),
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"analysis_created",
		"analysis",
		analysisID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":      err,
			"analysisId": analysisID,
		})
	}

	h.logger.Info("analysis record created", map[string]interface{}{
		"analysisId":   analysisID,
		"overallGrade": input.Analysis.Grades.Overall,
		"simulated":    simulated,
	})

	return &Output{
		AnalysisID:     analysisID,
		AnalysisStatus: "stored",
		CreatedAt:      createdAt,
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

// failJob retries transient insert failures and throws a BPMN error for
// terminal ones. Duplicates are terminal: the record is already stored.
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
