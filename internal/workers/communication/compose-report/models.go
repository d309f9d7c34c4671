// internal/workers/communication/compose-report/models.go
package composereport

import "admission-workers/internal/models"

// Input carries the finished analysis plus whatever optional context earlier
// workflow steps produced (bucket labels, the applicant's name).
type Input struct {
	AnalysisID    string                 `json:"analysisId,omitempty"`
	RecipientName string                 `json:"recipientName,omitempty"`
	Analysis      *models.AnalysisResult `json:"analysis"`
	Buckets       []models.CollegeBucket `json:"buckets,omitempty"`
}

// Output is the rendered report, ready for send-report to deliver as-is.
type Output struct {
	AnalysisID string `json:"analysisId,omitempty"`
	Subject    string `json:"subject"`
	TextBody   string `json:"textBody"`
	HTMLBody   string `json:"htmlBody"`
}
