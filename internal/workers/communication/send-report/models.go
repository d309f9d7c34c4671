// internal/workers/communication/send-report/models.go
package sendreport

type Input struct {
	AnalysisID string `json:"analysisId,omitempty"`
	To         string `json:"to"`
	Phone      string `json:"phone,omitempty"`
	Subject    string `json:"subject"`
	TextBody   string `json:"textBody"`
	HTMLBody   string `json:"htmlBody,omitempty"`
}

type Output struct {
	Status      string `json:"status"` // "sent" or "disabled"
	Provider    string `json:"provider,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
	SMSStatus   string `json:"smsStatus,omitempty"`
	DeliveredAt string `json:"deliveredAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Delivery providers
const (
	ProviderSES  = "ses"
	ProviderSMTP = "smtp"
)
