// internal/workers/communication/compose-report/handler_test.go
package composereport

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		SubjectPrefix: "Your College Admission Report",
		Timeout:       10 * time.Second,
	}
}

func createTestAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		OverallAssessment: "Your profile shows a solid academic foundation with room to grow.",
		Grades: models.GradeSet{
			Academic:        "B+",
			Extracurricular: "A-",
			Awards:          "B",
			Overall:         "B+",
		},
		CollegeChances: []models.AdmissionEstimate{
			{
				College:    "Harvard University",
				Tier:       models.TierIvyPlus,
				Percentage: 21,
				Chance:     models.ChanceLow,
				Color:      models.ColorRed,
			},
			{
				College:    "State University",
				Tier:       models.Tier2,
				Percentage: 60,
				Chance:     models.ChanceMedium,
				Color:      models.ColorYellow,
			},
		},
		ImprovementPlan: []string{
			"Enroll in more AP courses",
			"Seek a leadership role in an existing activity",
			"Enter regional or national competitions",
		},
	}
}

func createTestInput() *Input {
	return &Input{
		AnalysisID:    "analysis-001",
		RecipientName: "Jordan",
		Analysis:      createTestAnalysis(),
	}
}

// Create a test logger that implements the logger.Logger interface
type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl // Simple implementation for testing
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), newTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "analysis-001", output.AnalysisID)
	assert.Equal(t, "Your College Admission Report: Overall B+", output.Subject)

	assert.Contains(t, output.TextBody, "Hello Jordan,")
	assert.Contains(t, output.TextBody, "Your profile shows a solid academic foundation")
	assert.Contains(t, output.TextBody, "Academic        B+")
	assert.Contains(t, output.TextBody, "Extracurricular A-")
	assert.Contains(t, output.TextBody, "Harvard University: 21% (Low)")
	assert.Contains(t, output.TextBody, "State University: 60% (Medium)")
	assert.Contains(t, output.TextBody, "Improvement plan")
	assert.Contains(t, output.TextBody, "1. Enroll in more AP courses")
	assert.Contains(t, output.TextBody, "3. Enter regional or national competitions")
	assert.Contains(t, output.TextBody, "Generated on")

	assert.Contains(t, output.HTMLBody, "<h2>Hello Jordan,</h2>")
	assert.Contains(t, output.HTMLBody, "<strong>21% Low</strong>")
	assert.Contains(t, output.HTMLBody, "<strong>60% Medium</strong>")
	assert.Contains(t, output.HTMLBody, "color: red")
	assert.Contains(t, output.HTMLBody, "color: yellow")
	assert.Contains(t, output.HTMLBody, "<li>Seek a leadership role in an existing activity</li>")
}

func TestHandler_Execute_SubjectUsesConfiguredPrefix(t *testing.T) {
	config := createTestConfig()
	config.SubjectPrefix = "Admission Results"
	handler := NewHandler(config, newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Equal(t, "Admission Results: Overall B+", output.Subject)
}

func TestHandler_Execute_SubjectWithoutOverallGrade(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.Analysis.Grades.Overall = ""

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Your College Admission Report", output.Subject)
}

func TestHandler_Execute_SimulationNotice(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.Analysis.Simulated = true
	input.Analysis.SimulationNote = "This report was generated by the built-in estimator."

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Contains(t, output.TextBody, "Note: This report was generated by the built-in estimator.")
	assert.Contains(t, output.HTMLBody, "This report was generated by the built-in estimator.")
}

func TestHandler_Execute_NoSimulationNoticeWhenNotSimulated(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.NotContains(t, output.TextBody, "Note:")
	assert.NotContains(t, output.HTMLBody, "built-in estimator")
}

func TestHandler_Execute_BucketLabels(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.Buckets = []models.CollegeBucket{
		{College: "harvard university", Percentage: 21, Bucket: models.BucketTarget},
		{College: "State University", Percentage: 60, Bucket: models.BucketLikely},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	// Bucket matching ignores case so labels line up even when the two
	// workers saw differently cased names.
	assert.Contains(t, output.TextBody, "Harvard University: 21% (Low) [target]")
	assert.Contains(t, output.TextBody, "State University: 60% (Medium) [likely]")
	assert.Contains(t, output.HTMLBody, "<td>target</td>")
	assert.Contains(t, output.HTMLBody, "<td>likely</td>")
}

func TestHandler_Execute_NoBucketLabelsWithoutBuckets(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Contains(t, output.TextBody, "Harvard University: 21% (Low)\n")
	assert.NotContains(t, output.TextBody, "[")
}

func TestHandler_Execute_RecipientNameOptional(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.RecipientName = "   "

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Contains(t, output.TextBody, "Hello,")
	assert.Contains(t, output.HTMLBody, "<h2>Hello,</h2>")
}

func TestHandler_Execute_HTMLEscapesCollegeNames(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.Analysis.CollegeChances = []models.AdmissionEstimate{
		{
			College:    "<script>alert('x')</script>",
			Percentage: 40,
			Chance:     models.ChanceLow,
			Color:      models.ColorRed,
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NotContains(t, output.HTMLBody, "<script>alert")
	assert.Contains(t, output.HTMLBody, "&lt;script&gt;")
	// The plain-text body needs no escaping.
	assert.Contains(t, output.TextBody, "<script>alert('x')</script>: 40% (Low)")
}

func TestHandler_Execute_EmptyPlanOmitsSection(t *testing.T) {
	handler := createTestHandler(t)

	input := createTestInput()
	input.Analysis.ImprovementPlan = nil

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.NotContains(t, output.TextBody, "Improvement plan")
	assert.NotContains(t, output.HTMLBody, "Improvement plan")
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_MissingAnalysis(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
	}{
		{name: "Nil input", input: nil},
		{name: "Nil analysis", input: &Input{AnalysisID: "analysis-001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)

			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingAnalysis)
			assert.Nil(t, output)
		})
	}
}

// ==========================
// Integration-Style Tests
// ==========================

func TestHandler_FullWorkflow(t *testing.T) {
	handler := createTestHandler(t)

	variables := `{
		"analysisId": "analysis-042",
		"recipientName": "Casey",
		"analysis": {
			"overallAssessment": "A balanced profile with clear strengths in academics.",
			"grades": {"academic": "A", "extracurricular": "B+", "awards": "B", "overall": "A-"},
			"collegeChances": [
				{"college": "University of Michigan", "percentage": 48, "chance": "Low", "color": "red"}
			],
			"improvementPlan": ["Pursue a summer research program"],
			"simulated": false
		}
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))

	output, err := handler.Execute(context.Background(), &input)

	require.NoError(t, err)
	assert.Equal(t, "Your College Admission Report: Overall A-", output.Subject)
	assert.Contains(t, output.TextBody, "University of Michigan: 48% (Low)")

	data, err := json.Marshal(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subject"`)
	assert.Contains(t, string(data), `"textBody"`)
	assert.Contains(t, string(data), `"htmlBody"`)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	input := createTestInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := handler.Execute(context.Background(), input)
		if err != nil {
			b.Fatal(err)
		}
	}
}
