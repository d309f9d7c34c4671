// internal/workers/communication/send-report/handler.go
package sendreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	awsclient "admission-workers/internal/common/aws"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-report"
)

var (
	ErrInvalidRecipient    = errors.New("INVALID_RECIPIENT")
	ErrEmailDeliveryFailed = errors.New("EMAIL_DELIVERY_FAILED")
	ErrReportIncomplete    = errors.New("REPORT_INCOMPLETE")
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// NewHandler builds the AWS clients only when the configuration needs them,
// so an SMTP-only deployment runs without AWS credentials.
func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	h := &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}

	if config.Provider == ProviderSES || config.SMSEnabled {
		sesClient, err := awsclient.NewSESClient(context.Background(), config.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		snsClient, err := awsclient.NewSNSClient(context.Background(), config.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		h.sesClient = sesClient
		h.snsClient = snsClient
	}

	return h, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		switch {
		case errors.Is(err, ErrInvalidRecipient):
			errorCode = "INVALID_RECIPIENT"
		case errors.Is(err, ErrReportIncomplete):
			errorCode = "REPORT_INCOMPLETE"
		case errors.Is(err, ErrEmailDeliveryFailed):
			errorCode = "EMAIL_DELIVERY_FAILED"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if !h.config.EmailEnabled {
		h.logger.Info("email delivery disabled, skipping", map[string]interface{}{
			"analysisId": input.AnalysisID,
		})
		return &Output{
			Status:      StatusDisabled,
			DeliveredAt: time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	provider := h.config.Provider
	if provider != ProviderSMTP {
		provider = ProviderSES
	}

	var (
		messageID string
		err       error
	)
	if provider == ProviderSMTP {
		messageID, err = h.sendSMTP(input)
	} else {
		messageID, err = h.sendSES(ctx, input)
	}
	if err != nil {
		metrics.ReportsSent.WithLabelValues("email", StatusFailed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
	}
	metrics.ReportsSent.WithLabelValues("email", StatusSent).Inc()

	output := &Output{
		Status:      StatusSent,
		Provider:    provider,
		MessageID:   messageID,
		DeliveredAt: time.Now().UTC().Format(time.RFC3339),
	}

	// The email is already out, so an SMS problem never fails the job.
	if h.config.SMSEnabled && input.Phone != "" {
		if !isValidPhone(input.Phone) {
			h.logger.Warn("invalid phone number, skipping sms summary", map[string]interface{}{
				"phone": input.Phone,
			})
		} else if smsErr := h.sendSMS(ctx, input); smsErr != nil {
			h.logger.Warn("sms summary failed", map[string]interface{}{
				"error": smsErr.Error(),
			})
			output.SMSStatus = StatusFailed
			metrics.ReportsSent.WithLabelValues("sms", StatusFailed).Inc()
		} else {
			output.SMSStatus = StatusSent
			metrics.ReportsSent.WithLabelValues("sms", StatusSent).Inc()
		}
	}

	h.logger.Info("report delivered", map[string]interface{}{
		"analysisId": input.AnalysisID,
		"provider":   provider,
		"smsStatus":  output.SMSStatus,
	})

	return output, nil
}

func (h *Handler) sendSES(ctx context.Context, input *Input) (string, error) {
	if h.sesClient == nil {
		return "", errors.New("ses client not configured")
	}

	body := &types.Body{}
	if input.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(input.TextBody)}
	}
	if input.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(input.HTMLBody)}
	}

	result, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{input.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(input.Subject)},
			Body:    body,
		},
		Source: aws.String(h.config.FromEmail),
	})
	if err != nil {
		return "", fmt.Errorf("ses send: %w", err)
	}

	if result.MessageId != nil {
		return *result.MessageId, nil
	}
	return "", nil
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	if h.snsClient == nil {
		return errors.New("sns client not configured")
	}

	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(input.Phone),
		Message:     aws.String(buildSMSSummary(input)),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// buildSMSSummary keeps the SMS inside a single 160-character segment.
func buildSMSSummary(input *Input) string {
	summary := fmt.Sprintf("%s. Full report sent to %s.", input.Subject, input.To)
	if len(summary) > 160 {
		summary = summary[:157] + "..."
	}
	return summary
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

// failJob retries transient delivery failures and throws a BPMN error for
// everything else, mirroring the SMTP-vs-validation split of the provider
// errors upstream.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	if retries > 0 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(fmt.Sprintf("[%s] %s", errorCode, errorMessage)).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
