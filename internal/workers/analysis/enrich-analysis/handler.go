// internal/workers/analysis/enrich-analysis/handler.go
package enrichanalysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/engine"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/tidwall/gjson"
)

const (
	TaskType = "enrich-analysis"

	maxPlanItems = 10

	simulationNote = "Simulated analysis: AI enrichment was unavailable, so this report was produced by the deterministic scoring engine."
)

var (
	ErrEnrichmentFailed = errors.New("ENRICHMENT_FAILED")
)

type Handler struct {
	config   *Config
	provider Provider
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	h := &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}

	switch config.Provider {
	case "anthropic":
		if config.AnthropicAPIKey != "" {
			h.provider = newAnthropicProvider(config)
		}
	case "genai":
		if config.GenAIBaseURL != "" {
			h.provider = newGenAIProvider(config)
		}
	}

	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "ENRICHMENT_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute enriches the deterministic analysis when a provider is configured.
// Provider failures of any kind degrade to the deterministic result with the
// simulation notice; the only hard error is a missing base analysis.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Analysis == nil {
		return nil, fmt.Errorf("%w: analysis is required", ErrEnrichmentFailed)
	}
	base := *input.Analysis

	if h.provider == nil {
		return h.fallback(base, "no_provider", "no provider configured"), nil
	}

	prompt := h.buildPrompt(input)
	raw, err := h.provider.Complete(ctx, prompt)
	if err != nil {
		h.logger.Warn("enrichment call failed, serving deterministic result", map[string]interface{}{
			"provider": h.provider.Name(),
			"error":    err.Error(),
		})
		return h.fallback(base, "provider_error", err.Error()), nil
	}

	payload, err := parsePayload(raw)
	if err != nil {
		h.logger.Warn("enrichment payload rejected, serving deterministic result", map[string]interface{}{
			"provider": h.provider.Name(),
			"error":    err.Error(),
		})
		return h.fallback(base, "bad_payload", err.Error()), nil
	}

	enriched := h.merge(base, payload)

	h.logger.Info("analysis enriched", map[string]interface{}{
		"provider":     h.provider.Name(),
		"planItems":    len(enriched.ImprovementPlan),
		"collegeCount": len(enriched.CollegeChances),
	})

	return &Output{
		Analysis:  enriched,
		Simulated: false,
		Provider:  h.provider.Name(),
	}, nil
}

// fallback serves the deterministic result marked as simulated. The cause is
// the low-cardinality metric label; reason carries the full detail for logs.
func (h *Handler) fallback(base models.AnalysisResult, cause, reason string) *Output {
	metrics.EnrichmentFallbacks.WithLabelValues(cause).Inc()
	h.logger.Info("serving simulated analysis", map[string]interface{}{
		"reason": reason,
	})

	base.Simulated = true
	base.SimulationNote = simulationNote

	return &Output{
		Analysis:  base,
		Simulated: true,
	}
}

func (h *Handler) buildPrompt(input *Input) string {
	var parts []string

	parts = append(parts, "You are a college admissions advisor. Review the applicant data and the computed analysis below, then respond with ONLY a JSON object of the form:")
	parts = append(parts, `{"overallAssessment": string, "collegeChances": [{"college": string, "percentage": number, "feedback": string}], "improvementPlan": [string]}`)
	parts = append(parts, "Keep every college from the computed analysis and do not invent new ones.")

	if input.NormalizedProfile != nil {
		profileJSON, _ := json.MarshalIndent(input.NormalizedProfile, "", "  ")
		parts = append(parts, "\nApplicant Profile:")
		parts = append(parts, string(profileJSON))
	}

	analysisJSON, _ := json.MarshalIndent(input.Analysis, "", "  ")
	parts = append(parts, "\nComputed Analysis:")
	parts = append(parts, string(analysisJSON))

	return strings.Join(parts, "\n")
}

// parsePayload extracts the enrichment fields from the raw completion.
// Models wrap JSON in code fences or prose often enough that both are
// handled here before extraction.
func parsePayload(raw string) (*enrichmentPayload, error) {
	cleaned := stripCodeFences(raw)

	if !gjson.Valid(cleaned) {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in completion")
		}
		cleaned = cleaned[start : end+1]
		if !gjson.Valid(cleaned) {
			return nil, fmt.Errorf("completion is not valid JSON")
		}
	}

	payload := &enrichmentPayload{
		OverallAssessment: strings.TrimSpace(gjson.Get(cleaned, "overallAssessment").String()),
	}

	for _, item := range gjson.Get(cleaned, "collegeChances").Array() {
		college := strings.TrimSpace(item.Get("college").String())
		if college == "" {
			continue
		}
		payload.CollegeChances = append(payload.CollegeChances, enrichedEstimate{
			College:    college,
			Percentage: int(item.Get("percentage").Int()),
			Feedback:   strings.TrimSpace(item.Get("feedback").String()),
		})
	}

	for _, step := range gjson.Get(cleaned, "improvementPlan").Array() {
		if s := strings.TrimSpace(step.String()); s != "" {
			payload.ImprovementPlan = append(payload.ImprovementPlan, s)
		}
	}

	if payload.OverallAssessment == "" && len(payload.CollegeChances) == 0 && len(payload.ImprovementPlan) == 0 {
		return nil, fmt.Errorf("completion carries no usable fields")
	}

	return payload, nil
}

func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return trimmed
	}
	trimmed = trimmed[idx+1:]
	if end := strings.LastIndex(trimmed, "```"); end >= 0 {
		trimmed = trimmed[:end]
	}
	return strings.TrimSpace(trimmed)
}

// merge folds the model payload into the deterministic result. Percentages
// are clamped, labels and colors recomputed, plan capped, and the college
// order of the deterministic analysis preserved.
func (h *Handler) merge(base models.AnalysisResult, payload *enrichmentPayload) models.AnalysisResult {
	enriched := base

	if payload.OverallAssessment != "" {
		enriched.OverallAssessment = payload.OverallAssessment
	}

	if len(payload.CollegeChances) > 0 {
		byCollege := make(map[string]enrichedEstimate, len(payload.CollegeChances))
		for _, est := range payload.CollegeChances {
			byCollege[collegeKey(est.College)] = est
		}

		chances := make([]models.AdmissionEstimate, len(base.CollegeChances))
		copy(chances, base.CollegeChances)
		for i := range chances {
			est, ok := byCollege[collegeKey(chances[i].College)]
			if !ok {
				continue
			}
			if est.Percentage > 0 {
				pct := clampPercentage(est.Percentage)
				label, color := engine.ChanceLabel(pct)
				chances[i].Percentage = pct
				chances[i].Chance = label
				chances[i].Color = color
			}
			if est.Feedback != "" {
				chances[i].Feedback = est.Feedback
			}
		}
		enriched.CollegeChances = chances
	}

	if len(payload.ImprovementPlan) > 0 {
		plan := payload.ImprovementPlan
		if len(plan) > maxPlanItems {
			plan = plan[:maxPlanItems]
		}
		enriched.ImprovementPlan = plan
	}

	enriched.Simulated = false
	enriched.SimulationNote = ""

	return enriched
}

func collegeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clampPercentage(pct int) int {
	if pct < 1 {
		return 1
	}
	if pct > 95 {
		return 95
	}
	return pct
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
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
