// internal/workers/communication/send-report/service.go
package sendreport

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// sendSMTP delivers through the configured relay. SES gives back a message
// ID; SMTP does not, so one is minted locally for the audit trail.
func (h *Handler) sendSMTP(input *Input) (string, error) {
	addr := fmt.Sprintf("%s:%d", h.config.SMTPHost, h.config.SMTPPort)

	var auth smtp.Auth
	if h.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", h.config.SMTPUsername, h.config.SMTPPassword, h.config.SMTPHost)
	}

	msg := h.buildEmailMessage(input)

	var err error
	if h.config.SMTPUseTLS {
		err = h.sendWithTLS(addr, auth, input.To, msg)
	} else {
		err = smtp.SendMail(addr, auth, h.config.FromEmail, []string{input.To}, msg)
	}
	if err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	return generateMessageID(h.config.SMTPHost), nil
}

// buildEmailMessage assembles the raw message. The HTML body wins when both
// are present; the plain-text body only rides along for SES, which carries
// both parts natively.
func (h *Handler) buildEmailMessage(input *Input) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", h.config.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", input.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", input.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if input.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(input.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(input.TextBody)
	}

	return []byte(msg.String())
}

func (h *Handler) sendWithTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: h.config.SMTPHost}); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(h.config.FromEmail); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}

	return client.Quit()
}

func generateMessageID(host string) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("<%d.report@%s>", time.Now().UnixNano(), host)
}
