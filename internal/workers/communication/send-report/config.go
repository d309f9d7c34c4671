// internal/workers/communication/send-report/config.go
package sendreport

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	Provider     string // "ses" or "smtp"
	FromEmail    string
	AWSRegion    string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		Provider:     ProviderSES,
		Timeout:      30 * time.Second,
	}
}
