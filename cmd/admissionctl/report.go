// cmd/admissionctl/report.go
package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/engine"
	"admission-workers/internal/models"
	composereport "admission-workers/internal/workers/communication/compose-report"
	sendreport "admission-workers/internal/workers/communication/send-report"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	reportTo   string
	reportName string
)

//nolint:gochecknoglobals // Cobra boilerplate
var sendTestReportCmd = &cobra.Command{
	Use:   "send-test-report",
	Short: "Render and send a sample admission report",
	Long: `Run a built-in sample profile through the engine, render the report
the way compose-report does, and deliver it with the configured email
provider. Use this to verify SES or SMTP credentials end to end
without starting the workflow engine.`,
	RunE: runSendTestReport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sendTestReportCmd)
	sendTestReportCmd.Flags().StringVar(&reportTo, "to", "", "Recipient email address")
	sendTestReportCmd.Flags().StringVar(&reportName, "name", "Test Student", "Recipient name used in the greeting")
	_ = sendTestReportCmd.MarkFlagRequired("to")
}

func runSendTestReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewNoOpLogger()
	if verbose {
		log = logger.NewStructured("debug", "console")
	}

	eng := engine.New(engine.Options{CurrentYear: cfg.Analysis.CurrentYear, Logger: log})
	analysis := eng.Analyze(sampleProfile(eng.CurrentYear()))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	composer := composereport.NewHandler(&composereport.Config{
		SubjectPrefix: cfg.Reports.SubjectPrefix,
		Timeout:       30 * time.Second,
	}, log)
	composed, err := composer.Execute(ctx, &composereport.Input{
		RecipientName: reportName,
		Analysis:      &analysis,
	})
	if err != nil {
		return fmt.Errorf("compose report: %w", err)
	}

	// Same wiring as the worker manager, except email is forced on:
	// a test send with delivery disabled would verify nothing.
	srCfg := &sendreport.Config{
		EmailEnabled: true,
		Provider:     sendreport.ProviderSES,
		FromEmail:    cfg.Notifications.Email.FromEmail,
		AWSRegion:    cfg.Notifications.AWS.Region,
		SMTPHost:     cfg.Integrations.SMTP.Host,
		SMTPPort:     cfg.Integrations.SMTP.Port,
		SMTPUsername: cfg.Integrations.SMTP.Username,
		SMTPPassword: cfg.Integrations.SMTP.Password,
		SMTPUseTLS:   cfg.Integrations.SMTP.UseTLS,
		Timeout:      30 * time.Second,
	}
	if srCfg.AWSRegion == "" {
		srCfg.AWSRegion = cfg.Integrations.AWS.Region
	}
	if srCfg.FromEmail == "" {
		srCfg.FromEmail = cfg.Integrations.AWS.SES.FromEmail
	}
	if !cfg.Integrations.AWS.SES.Enabled && cfg.Integrations.SMTP.Host != "" {
		srCfg.Provider = sendreport.ProviderSMTP
	}

	sender, err := sendreport.NewHandler(srCfg, log)
	if err != nil {
		return fmt.Errorf("init sender: %w", err)
	}
	sent, err := sender.Execute(ctx, &sendreport.Input{
		To:       reportTo,
		Subject:  composed.Subject,
		TextBody: composed.TextBody,
		HTMLBody: composed.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	fmt.Printf("✓ Report %s via %s", sent.Status, sent.Provider)
	if sent.MessageID != "" {
		fmt.Printf(" (message %s)", sent.MessageID)
	}
	fmt.Println()
	return nil
}

// sampleProfile is a strong applicant so the test report shows every
// section populated, including a Safety and a Reach bucket.
func sampleProfile(year int) models.AdmissionProfile {
	return models.AdmissionProfile{
		Academics: models.AcademicRecord{
			GPA:         "3.9",
			WeightedGPA: "4.4",
			SAT:         "1520",
			APCourses:   "8",
			CourseRigor: models.RigorVeryHigh,
		},
		Activities: []models.Activity{
			{Name: "Robotics Club", Role: "President", YearsInvolved: "3", HoursPerWeek: "10"},
			{Name: "Varsity Soccer", Role: "Captain", YearsInvolved: "4", HoursPerWeek: "12"},
			{Name: "Local Food Bank", Role: "Volunteer", YearsInvolved: "2", HoursPerWeek: "4"},
		},
		Honors: []models.Honor{
			{Title: "AIME Qualifier", Level: models.LevelNational, Year: strconv.Itoa(year - 1)},
			{Title: "Science Fair First Place", Level: models.LevelState, Year: strconv.Itoa(year - 1)},
		},
		Colleges: []string{
			"Massachusetts Institute of Technology",
			"University of Michigan",
			"Ohio State University",
		},
		Major:     "Computer Science",
		Residency: models.ResidencyOutOfState,
	}
}
