package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"confprogram/internal/domain"
)

// EmailReportService mails pipeline run summaries to the configured
// recipients.
type EmailReportService struct {
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	recipients []string
	logger     *slog.Logger
}

// NewEmailReportService creates an EmailReportService.
func NewEmailReportService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipients []string, logger *slog.Logger) *EmailReportService {
	return &EmailReportService{
		mailer:     mailer,
		renderer:   renderer,
		recipients: recipients,
		logger:     logger,
	}
}

// SendTransformReport renders the transform report template and sends it
// to every recipient. With no recipients configured it does nothing.
func (s *EmailReportService) SendTransformReport(ctx context.Context, report *domain.TransformReport) error {
	if len(s.recipients) == 0 {
		return nil
	}

	data := domain.TransformReportEmailData{
		Event:        report.Event,
		Sessions:     report.Sessions,
		Speakers:     report.Speakers,
		ScheduleDays: report.ScheduleDays,
		Duplicates:   duplicateLines(report),
		FinishedAt:   report.FinishedAt.Format(time.RFC1123),
	}
	subject, html, text, err := s.renderer.Render("transform_report", data)
	if err != nil {
		return fmt.Errorf("render transform report: %w", err)
	}

	for _, to := range s.recipients {
		if err := s.mailer.Send(to, subject, html, text); err != nil {
			return fmt.Errorf("send transform report to %s: %w", to, err)
		}
		s.logger.Info("transform report sent", "to", to, "event", report.Event)
	}
	return nil
}

// duplicateLines flattens the report's duplicate maps into readable
// warning lines, sorted for stable output.
func duplicateLines(report *domain.TransformReport) []string {
	var lines []string
	for _, slugVal := range sortedKeys(report.DuplicateSessionSlugs) {
		lines = append(lines, fmt.Sprintf("duplicate session slug %q: %s",
			slugVal, strings.Join(report.DuplicateSessionSlugs[slugVal], ", ")))
	}
	for _, slugVal := range sortedKeys(report.DuplicateSpeakerSlugs) {
		lines = append(lines, fmt.Sprintf("duplicate speaker slug %q: %s",
			slugVal, strings.Join(report.DuplicateSpeakerSlugs[slugVal], ", ")))
	}
	for _, title := range sortedKeys(report.DuplicateTitles) {
		lines = append(lines, fmt.Sprintf("duplicate session title %q: %s",
			title, strings.Join(report.DuplicateTitles[title], ", ")))
	}
	for _, name := range sortedKeys(report.DuplicateNames) {
		lines = append(lines, fmt.Sprintf("duplicate speaker name %q: %s",
			name, strings.Join(report.DuplicateNames[name], ", ")))
	}
	return lines
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
