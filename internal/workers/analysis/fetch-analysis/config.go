// internal/workers/analysis/fetch-analysis/config.go
package fetchanalysis

import "time"

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 60 * time.Minute,
		Timeout:  30 * time.Second,
	}
}
