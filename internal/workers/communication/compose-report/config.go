// internal/workers/communication/compose-report/config.go
package composereport

import "time"

type Config struct {
	SubjectPrefix string
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SubjectPrefix: "Your College Admission Analysis",
		Timeout:       30 * time.Second,
	}
}
