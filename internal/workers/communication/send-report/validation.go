// internal/workers/communication/send-report/validation.go
package sendreport

import (
	"fmt"
	"strings"
)

// validateInput rejects anything the providers would bounce anyway, before a
// single network call is made.
func validateInput(input *Input) error {
	if input == nil {
		return fmt.Errorf("%w: input is required", ErrInvalidRecipient)
	}

	if !isValidEmail(input.To) {
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidRecipient, input.To)
	}

	if strings.TrimSpace(input.Subject) == "" {
		return fmt.Errorf("%w: subject is empty", ErrReportIncomplete)
	}

	if input.TextBody == "" && input.HTMLBody == "" {
		return fmt.Errorf("%w: no text or html body", ErrReportIncomplete)
	}

	return nil
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// isValidPhone accepts E.164-style numbers. A bad phone never fails the job,
// it just skips the SMS summary.
func isValidPhone(phone string) bool {
	trimmed := strings.TrimPrefix(phone, "+")
	if len(trimmed) < 7 || len(trimmed) > 15 {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
