// internal/workers/college/search-colleges/handler.go
package searchcolleges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/engine"
	"admission-workers/internal/models"
	"admission-workers/internal/workers/college/search-colleges/queries"
)

const (
	TaskType = "search-colleges"
)

var (
	ErrMissingQuery = errors.New("MISSING_QUERY")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

// NewHandler accepts a nil client; the classifier fallback then serves
// every query.
func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
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
		h.failJob(client, job, "MISSING_QUERY", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

// execute searches the college index and degrades to the tier classifier on
// any Elasticsearch problem, so the caller always gets a tier back.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrMissingQuery)
	}

	size := input.Size
	if size < 1 || size > h.config.MaxResults {
		size = h.config.MaxResults
	}

	if h.client != nil {
		result, err := queries.Execute(ctx, h.client, queries.CollegeQuery{
			Index: h.config.IndexName,
			Text:  query,
			Size:  size,
		})
		if err == nil && result.TotalHits > 0 {
			matches := make([]models.CollegeMatch, 0, len(result.Docs))
			for _, doc := range result.Docs {
				matches = append(matches, models.CollegeMatch{
					Name:   doc.Source.Name,
					Tier:   doc.Source.Tier,
					Public: doc.Source.Public,
					Score:  doc.Score,
				})
			}
			h.logger.Info("college search completed", map[string]interface{}{
				"query":     query,
				"totalHits": result.TotalHits,
				"took":      result.Took,
			})
			return &Output{
				Matches:   matches,
				TotalHits: result.TotalHits,
				Source:    "elasticsearch",
				Took:      result.Took,
			}, nil
		}
		if err != nil {
			h.logger.Warn("college search failed, using classifier", map[string]interface{}{
				"query": query,
				"error": err,
			})
		}
	}

	match := models.CollegeMatch{
		Name:   query,
		Tier:   engine.ClassifyTier(query),
		Public: engine.IsPublicUniversity(query),
	}

	return &Output{
		Matches:   []models.CollegeMatch{match},
		TotalHits: 1,
		Source:    "classifier",
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
