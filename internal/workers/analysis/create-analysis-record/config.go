// internal/workers/analysis/create-analysis-record/config.go
package createanalysisrecord

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
