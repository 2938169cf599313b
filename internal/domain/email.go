package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TransformReportEmailData holds data for the transform report email.
type TransformReportEmailData struct {
	Event        string
	Sessions     int
	Speakers     int
	ScheduleDays int
	Duplicates   []string // preformatted warning lines, empty when clean
	FinishedAt   string
}

// ReportService defines the contract for sending pipeline run reports.
type ReportService interface {
	SendTransformReport(ctx context.Context, report *TransformReport) error
}
