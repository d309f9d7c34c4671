// internal/workers/analysis/validate-profile/handler.go
package validateprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-profile"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
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
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

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
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrProfileValidationFailed)
	}

	// Structural pass against the embedded schema
	schemaErrors, profile, err := h.checkStructure(input.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileValidationFailed, err)
	}
	if len(schemaErrors) > 0 {
		return nil, h.validationFailure(schemaErrors)
	}

	normalized := h.normalize(profile)

	// Semantic pass on the typed profile. Only structural problems fail the
	// job: scoring falls back on any malformed field, so bad values become
	// warnings, not errors.
	fieldErrors, warnings := h.checkFields(normalized)

	isValid := len(fieldErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":      isValid,
		"errorCount":   len(fieldErrors),
		"warningCount": len(warnings),
	})

	if !isValid {
		return nil, h.validationFailure(fieldErrors)
	}

	return &Output{
		IsValid:           true,
		NormalizedProfile: normalized,
		ValidationErrors:  []ValidationError{},
		Warnings:          warnings,
	}, nil
}

func (h *Handler) checkStructure(raw map[string]interface{}) ([]ValidationError, models.AdmissionProfile, error) {
	var profile models.AdmissionProfile

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, profile, fmt.Errorf("schema validation error: %v", err)
	}

	if !result.Valid() {
		errs := make([]ValidationError, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, ValidationError{
				Field:   desc.Field(),
				Code:    "SCHEMA_VIOLATION",
				Message: desc.Description(),
			})
		}
		return errs, profile, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, profile, fmt.Errorf("marshal profile: %v", err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, profile, fmt.Errorf("decode profile: %v", err)
	}

	return nil, profile, nil
}

func (h *Handler) normalize(p models.AdmissionProfile) models.AdmissionProfile {
	p.Academics.GPA = strings.TrimSpace(p.Academics.GPA)
	p.Academics.WeightedGPA = strings.TrimSpace(p.Academics.WeightedGPA)
	p.Academics.SAT = strings.TrimSpace(p.Academics.SAT)
	p.Academics.ACT = strings.TrimSpace(p.Academics.ACT)
	p.Academics.APCourses = strings.TrimSpace(p.Academics.APCourses)
	p.Academics.CourseRigor = strings.ToLower(strings.TrimSpace(p.Academics.CourseRigor))

	activities := make([]models.Activity, 0, len(p.Activities))
	for _, a := range p.Activities {
		a.Name = strings.TrimSpace(a.Name)
		a.Role = strings.TrimSpace(a.Role)
		a.YearsInvolved = strings.TrimSpace(a.YearsInvolved)
		a.HoursPerWeek = strings.TrimSpace(a.HoursPerWeek)
		a.Description = strings.TrimSpace(a.Description)
		if !a.IsEmpty() {
			activities = append(activities, a)
		}
	}
	p.Activities = activities

	honors := make([]models.Honor, 0, len(p.Honors))
	for _, hn := range p.Honors {
		hn.Title = strings.TrimSpace(hn.Title)
		hn.Level = strings.ToLower(strings.TrimSpace(hn.Level))
		hn.Year = strings.TrimSpace(hn.Year)
		if !hn.IsEmpty() {
			honors = append(honors, hn)
		}
	}
	p.Honors = honors

	colleges := make([]string, 0, len(p.Colleges))
	for _, c := range p.Colleges {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			colleges = append(colleges, trimmed)
		}
	}
	p.Colleges = colleges

	p.Major = strings.TrimSpace(p.Major)
	p.Residency = strings.ToLower(strings.TrimSpace(p.Residency))

	return p
}

func (h *Handler) checkFields(p models.AdmissionProfile) ([]ValidationError, []ValidationError) {
	errors := []ValidationError{}
	warnings := []ValidationError{}

	if len(p.Colleges) == 0 {
		errors = append(errors, ValidationError{
			Field:   "colleges",
			Code:    "MISSING_REQUIRED",
			Message: "At least one college is required",
		})
	}

	if p.Academics.GPA == "" {
		warnings = append(warnings, ValidationError{
			Field:   "academics.gpa",
			Code:    "MISSING_VALUE",
			Message: "GPA is empty; scoring assumes 3.0",
		})
	} else if !isNumeric(p.Academics.GPA) {
		warnings = append(warnings, ValidationError{
			Field:   "academics.gpa",
			Code:    "INVALID_FORMAT",
			Message: "GPA is not numeric; scoring assumes 3.0",
		})
	}

	numericFields := []struct {
		field string
		value string
	}{
		{"academics.weightedGpa", p.Academics.WeightedGPA},
		{"academics.sat", p.Academics.SAT},
		{"academics.act", p.Academics.ACT},
		{"academics.apCourses", p.Academics.APCourses},
	}
	for _, nf := range numericFields {
		if nf.value != "" && !isNumeric(nf.value) {
			warnings = append(warnings, ValidationError{
				Field:   nf.field,
				Code:    "INVALID_FORMAT",
				Message: "Value is not numeric and will be treated as 0",
			})
		}
	}

	if p.Academics.CourseRigor != "" && !validCourseRigor[p.Academics.CourseRigor] {
		warnings = append(warnings, ValidationError{
			Field:   "academics.courseRigor",
			Code:    "INVALID_ENUM",
			Message: "Course rigor must be one of low, moderate, high, very_high",
		})
	}

	for i, a := range p.Activities {
		if a.YearsInvolved != "" && !isNumeric(a.YearsInvolved) {
			warnings = append(warnings, ValidationError{
				Field:   fmt.Sprintf("activities[%d].yearsInvolved", i),
				Code:    "INVALID_FORMAT",
				Message: "Value is not numeric and will be treated as 0",
			})
		}
		if a.HoursPerWeek != "" && !isNumeric(a.HoursPerWeek) {
			warnings = append(warnings, ValidationError{
				Field:   fmt.Sprintf("activities[%d].hoursPerWeek", i),
				Code:    "INVALID_FORMAT",
				Message: "Value is not numeric and will be treated as 0",
			})
		}
	}

	for i, hn := range p.Honors {
		if hn.Level != "" && !validHonorLevel[hn.Level] {
			warnings = append(warnings, ValidationError{
				Field:   fmt.Sprintf("honors[%d].level", i),
				Code:    "INVALID_ENUM",
				Message: "Level must be one of school, regional, state, national, international",
			})
		}
		if hn.Year != "" {
			year, err := strconv.Atoi(hn.Year)
			if err != nil {
				warnings = append(warnings, ValidationError{
					Field:   fmt.Sprintf("honors[%d].year", i),
					Code:    "INVALID_FORMAT",
					Message: "Year is not numeric; recency credit will not apply",
				})
			} else if year < 1900 || year > 2100 {
				warnings = append(warnings, ValidationError{
					Field:   fmt.Sprintf("honors[%d].year", i),
					Code:    "INVALID_FORMAT",
					Message: fmt.Sprintf("Year %d is implausible", year),
				})
			}
		}
	}

	if p.Residency != "" && !validResidency[p.Residency] {
		warnings = append(warnings, ValidationError{
			Field:   "residency",
			Code:    "INVALID_ENUM",
			Message: "Residency must be one of in-state, out-of-state, international",
		})
	}

	return errors, warnings
}

func (h *Handler) validationFailure(errs []ValidationError) error {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Errorf("%w: %s", ErrProfileValidationFailed, strings.Join(messages, "; "))
}

func isNumeric(raw string) bool {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
