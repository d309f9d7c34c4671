// internal/workers/communication/compose-report/handler.go
package composereport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "compose-report"

var (
	ErrMissingAnalysis = errors.New("analysis is required")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "REPORT_RENDER_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Analysis == nil {
		return nil, ErrMissingAnalysis
	}

	view := buildView(input)

	var textBuf bytes.Buffer
	if err := reportText.Execute(&textBuf, view); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}

	var htmlBuf bytes.Buffer
	if err := reportHTML.Execute(&htmlBuf, view); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	h.logger.Info("report composed", map[string]interface{}{
		"analysisId":   input.AnalysisID,
		"collegeCount": len(input.Analysis.CollegeChances),
		"simulated":    input.Analysis.Simulated,
	})

	return &Output{
		AnalysisID: input.AnalysisID,
		Subject:    h.subject(input.Analysis),
		TextBody:   textBuf.String(),
		HTMLBody:   htmlBuf.String(),
	}, nil
}

func (h *Handler) subject(analysis *models.AnalysisResult) string {
	if analysis.Grades.Overall == "" {
		return h.config.SubjectPrefix
	}
	return fmt.Sprintf("%s: Overall %s", h.config.SubjectPrefix, analysis.Grades.Overall)
}

// buildView flattens the analysis into template data. Bucket labels are
// matched to estimates by college name since categorize-colleges may have
// been skipped for this instance.
func buildView(input *Input) *reportView {
	analysis := input.Analysis

	buckets := make(map[string]string, len(input.Buckets))
	for _, b := range input.Buckets {
		buckets[strings.ToLower(b.College)] = b.Bucket
	}

	rows := make([]collegeRow, 0, len(analysis.CollegeChances))
	for _, estimate := range analysis.CollegeChances {
		rows = append(rows, collegeRow{
			College:    estimate.College,
			Percentage: estimate.Percentage,
			Chance:     estimate.Chance,
			Color:      estimate.Color,
			Bucket:     buckets[strings.ToLower(estimate.College)],
		})
	}

	return &reportView{
		RecipientName:  strings.TrimSpace(input.RecipientName),
		Assessment:     analysis.OverallAssessment,
		Grades:         analysis.Grades,
		Colleges:       rows,
		Plan:           analysis.ImprovementPlan,
		Simulated:      analysis.Simulated,
		SimulationNote: analysis.SimulationNote,
		GeneratedAt:    time.Now().UTC().Format("January 2, 2006"),
	}
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

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
