// cmd/admissionctl/analyze.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/engine"
	"admission-workers/internal/models"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeInput string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeYear int

//nolint:gochecknoglobals // Cobra boilerplate
var analyzePretty bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the admission analysis engine offline",
	Long: `Run the deterministic analysis engine against a profile JSON file and
print the result, without touching Camunda or any backend.

Example:
  admissionctl analyze --input profile.json --pretty
  admissionctl analyze --input profile.json --year 2025`,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "Path to the profile JSON file")
	analyzeCmd.Flags().IntVar(&analyzeYear, "year", 0, "Anchor year for award recency (default: system clock)")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "Indent the output JSON")
	analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var profile models.AdmissionProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	if len(profile.Colleges) == 0 {
		return fmt.Errorf("profile lists no colleges")
	}

	log := logger.NewNoOpLogger()
	if verbose {
		log = logger.NewStructured("debug", "console")
	}

	eng := engine.New(engine.Options{CurrentYear: analyzeYear, Logger: log})
	result := eng.Analyze(profile)

	var out []byte
	if analyzePretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
