// internal/workers/college/parse-college-list/handler_test.go
package parsecollegelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"admission-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
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
	tests := []struct {
		name             string
		input            *Input
		expectedColleges []string
	}{
		{
			name:             "newline separated textarea",
			input:            &Input{Colleges: "Harvard University\nMIT\nState University"},
			expectedColleges: []string{"Harvard University", "MIT", "State University"},
		},
		{
			name:             "comma separated",
			input:            &Input{Colleges: "Harvard University, MIT, State University"},
			expectedColleges: []string{"Harvard University", "MIT", "State University"},
		},
		{
			name:             "semicolon separated",
			input:            &Input{Colleges: "Harvard University; MIT; State University"},
			expectedColleges: []string{"Harvard University", "MIT", "State University"},
		},
		{
			name:             "mixed separators with blank lines",
			input:            &Input{Colleges: "Harvard University\n\nMIT,  ;\r\nState University"},
			expectedColleges: []string{"Harvard University", "MIT", "State University"},
		},
		{
			name:             "array input",
			input:            &Input{Colleges: []interface{}{"Harvard University", "  MIT  ", ""}},
			expectedColleges: []string{"Harvard University", "MIT"},
		},
		{
			name:             "string slice input",
			input:            &Input{Colleges: []string{"Harvard University", "MIT"}},
			expectedColleges: []string{"Harvard University", "MIT"},
		},
		{
			name:             "case-insensitive dedupe keeps first occurrence",
			input:            &Input{Colleges: "Harvard University\nharvard university\nHARVARD UNIVERSITY\nMIT"},
			expectedColleges: []string{"Harvard University", "MIT"},
		},
		{
			name:             "single college",
			input:            &Input{Colleges: "Stanford University"},
			expectedColleges: []string{"Stanford University"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)
			output, err := handler.Execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectedColleges, output.Colleges)
			assert.Equal(t, len(tt.expectedColleges), output.CollegeCount)
		})
	}
}

func TestHandler_Execute_EmptyList(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "nil colleges", input: &Input{Colleges: nil}},
		{name: "empty string", input: &Input{Colleges: ""}},
		{name: "only separators", input: &Input{Colleges: ",,;\n\n  ,  "}},
		{name: "array of blanks", input: &Input{Colleges: []interface{}{"", "   ", "\t"}}},
		{name: "non-string value", input: &Input{Colleges: 42.0}},
		{name: "array of non-strings", input: &Input{Colleges: []interface{}{1.0, true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)
			output, err := handler.Execute(context.Background(), tt.input)

			assert.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, errors.Is(err, ErrInvalidCollegeList))
		})
	}
}

func TestHandler_Execute_CapsAtTen(t *testing.T) {
	handler := createTestHandler(t)

	var names []string
	for i := 1; i <= 15; i++ {
		names = append(names, fmt.Sprintf("College %d", i))
	}
	input := &Input{Colleges: names}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, output.Colleges, maxColleges)
	assert.Equal(t, maxColleges, output.CollegeCount)
	// First ten survive in order
	assert.Equal(t, "College 1", output.Colleges[0])
	assert.Equal(t, "College 10", output.Colleges[9])
}

// ==========================
// Helper Function Tests
// ==========================

func TestHandler_ParseCollegeList(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name     string
		raw      interface{}
		expected []string
	}{
		{"nil input", nil, []string{}},
		{"plain string", "MIT", []string{"MIT"}},
		{"whitespace trimmed", "  MIT  \n  Caltech  ", []string{"MIT", "Caltech"}},
		{"dedupe preserves original casing", "mit\nMIT", []string{"mit"}},
		{"interface slice", []interface{}{"A", "B", "A"}, []string{"A", "B"}},
		{"string slice", []string{"A", "b", "B"}, []string{"A", "b"}},
		{"unsupported type", map[string]interface{}{"x": 1}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handler.parseCollegeList(tt.raw)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitFreeText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"newlines", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows newlines", "a\r\nb", []string{"a", "b"}},
		{"commas", "a,b,c", []string{"a", "b", "c"}},
		{"semicolons", "a;b", []string{"a", "b"}},
		{"mixed", "a\nb,c;d", []string{"a", "b", "c", "d"}},
		{"empty", "", nil},
		{"consecutive separators collapse", "a,,;;\n\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitFreeText(tt.text)
			if tt.expected == nil {
				assert.Empty(t, result)
			} else {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// ==========================
// Integration-Style Tests
// ==========================

func TestHandler_FullWorkflow(t *testing.T) {
	handler := createTestHandler(t)

	// Simulate the variables a form submission would put on the process
	variables := `{"colleges": "Harvard University\nuniversity of michigan, Georgia Tech; harvard university"}`

	var input Input
	assert.NoError(t, json.Unmarshal([]byte(variables), &input))

	output, err := handler.Execute(context.Background(), &input)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Harvard University", "university of michigan", "Georgia Tech"}, output.Colleges)
	assert.Equal(t, 3, output.CollegeCount)

	// Output must serialize cleanly back into process variables
	data, err := json.Marshal(output)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"collegeCount":3`)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	input := &Input{Colleges: "Harvard University\nMIT, Stanford University; Caltech\nPrinceton University"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ParseCollegeList(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	raw := "Harvard University\nMIT, Stanford University; Caltech\nPrinceton University, harvard university"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = handler.parseCollegeList(raw)
	}
}
