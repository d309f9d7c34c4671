// internal/workers/college/categorize-colleges/config.go
package categorizecolleges

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
