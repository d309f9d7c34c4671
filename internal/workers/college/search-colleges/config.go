// internal/workers/college/search-colleges/config.go
package searchcolleges

import "time"

type Config struct {
	IndexName  string
	MaxResults int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName:  "colleges",
		MaxResults: 10,
		Timeout:    10 * time.Second,
	}
}
