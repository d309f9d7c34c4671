// internal/workers/college/categorize-colleges/handler.go
package categorizecolleges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "categorize-colleges"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
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
		h.failJob(client, job, "CATEGORIZATION_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Analysis == nil {
		return nil, ErrNilInput
	}
	if len(input.Analysis.CollegeChances) == 0 {
		return nil, errors.New("no college estimates to categorize")
	}

	output := &Output{
		Buckets: make([]models.CollegeBucket, 0, len(input.Analysis.CollegeChances)),
	}

	for _, est := range input.Analysis.CollegeChances {
		bucket := bucketFor(est.Percentage)
		switch bucket {
		case models.BucketReach:
			output.ReachCount++
		case models.BucketTarget:
			output.TargetCount++
		case models.BucketLikely:
			output.LikelyCount++
		}
		output.Buckets = append(output.Buckets, models.CollegeBucket{
			College:    est.College,
			Percentage: est.Percentage,
			Bucket:     bucket,
		})
	}

	// A balanced list needs all three buckets, which is only achievable
	// with at least three colleges.
	output.Balanced = len(output.Buckets) >= 3 &&
		output.ReachCount > 0 && output.TargetCount > 0 && output.LikelyCount > 0

	h.logger.Info("colleges categorized", map[string]interface{}{
		"reachCount":  output.ReachCount,
		"targetCount": output.TargetCount,
		"likelyCount": output.LikelyCount,
		"balanced":    output.Balanced,
	})

	return output, nil
}

func bucketFor(percentage int) string {
	switch {
	case percentage < 20:
		return models.BucketReach
	case percentage < 55:
		return models.BucketTarget
	default:
		return models.BucketLikely
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
