// internal/workers/analysis/enrich-analysis/config.go
package enrichanalysis

import "time"

type Config struct {
	// Provider selects the enrichment backend: "genai", "anthropic", or
	// empty to serve the deterministic result directly.
	Provider        string
	GenAIBaseURL    string
	GenAIAPIKey     string
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	Timeout         time.Duration
	MaxRetries      int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		MaxTokens:  2048,
	}
}
