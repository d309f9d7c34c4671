// internal/workers/college/categorize-colleges/handler_test.go
package categorizecolleges

import (
	"context"
	"errors"
	"testing"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

func createAnalysis(chances ...models.AdmissionEstimate) *models.AnalysisResult {
	return &models.AnalysisResult{
		CollegeChances: chances,
	}
}

func estimate(college string, percentage int) models.AdmissionEstimate {
	return models.AdmissionEstimate{College: college, Percentage: percentage}
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

	input := &Input{Analysis: createAnalysis(
		estimate("Harvard University", 12),
		estimate("University of Michigan", 35),
		estimate("State University", 60),
		estimate("Local College", 88),
	)}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, 1, output.ReachCount)
	assert.Equal(t, 1, output.TargetCount)
	assert.Equal(t, 2, output.LikelyCount)
	assert.True(t, output.Balanced)

	// Input order preserved
	assert.Equal(t, "Harvard University", output.Buckets[0].College)
	assert.Equal(t, models.BucketReach, output.Buckets[0].Bucket)
	assert.Equal(t, "University of Michigan", output.Buckets[1].College)
	assert.Equal(t, models.BucketTarget, output.Buckets[1].Bucket)
	assert.Equal(t, "State University", output.Buckets[2].College)
	assert.Equal(t, models.BucketLikely, output.Buckets[2].Bucket)
	assert.Equal(t, "Local College", output.Buckets[3].College)
	assert.Equal(t, models.BucketLikely, output.Buckets[3].Bucket)
}

func TestHandler_Execute_UnbalancedList(t *testing.T) {
	handler := createTestHandler(t)

	// All reach schools
	input := &Input{Analysis: createAnalysis(
		estimate("Harvard University", 8),
		estimate("Yale University", 10),
		estimate("Princeton University", 12),
	)}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, 3, output.ReachCount)
	assert.Equal(t, 0, output.TargetCount)
	assert.Equal(t, 0, output.LikelyCount)
	assert.False(t, output.Balanced)
}

func TestHandler_Execute_TwoCollegesNeverBalanced(t *testing.T) {
	handler := createTestHandler(t)

	// One reach and one likely covers two buckets, but a balanced list
	// needs all three
	input := &Input{Analysis: createAnalysis(
		estimate("Harvard University", 10),
		estimate("State University", 70),
	)}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.False(t, output.Balanced)
}

func TestHandler_Execute_BucketBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		percentage int
		expected   string
	}{
		{"one percent is reach", 1, models.BucketReach},
		{"nineteen is reach", 19, models.BucketReach},
		{"twenty is target", 20, models.BucketTarget},
		{"fifty-four is target", 54, models.BucketTarget},
		{"fifty-five is likely", 55, models.BucketLikely},
		{"ninety-five is likely", 95, models.BucketLikely},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bucketFor(tt.percentage))
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, ErrNilInput))

	output, err = handler.Execute(context.Background(), &Input{})
	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, ErrNilInput))
}

func TestHandler_Execute_EmptyEstimates(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Analysis: createAnalysis()})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "no college estimates")
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	input := &Input{Analysis: createAnalysis(
		estimate("Harvard University", 12),
		estimate("University of Michigan", 35),
		estimate("State University", 60),
		estimate("Local College", 88),
	)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = handler.Execute(context.Background(), input)
	}
}
