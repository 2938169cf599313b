package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"confprogram/config"
	_ "confprogram/docs"
	"confprogram/internal/adapters/email"
	"confprogram/internal/domain"
	"confprogram/internal/repository/postgres"
	"confprogram/internal/services"
)

var version = "dev"

// @title Conference Program Dataset API
// @version 1.0
// @description Read-only API over the published conference program dataset.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:     "confprogram",
		Short:   "Conference program pipeline - download Pretalx data, publish the website dataset, serve it",
		Version: version,
	}

	rootCmd.AddCommand(downloadCmd())
	rootCmd.AddCommand(transformCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openArchive connects the run archive when DATABASE_URL is configured.
// The returned repository is nil when archiving is disabled; callers close
// the db handle when it is not nil.
func openArchive(cfg *config.Config) (domain.ArchiveRepository, *sql.DB, error) {
	if !cfg.ArchiveEnabled() {
		return nil, nil, nil
	}
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping archive database: %w", err)
	}
	return postgres.NewArchiveRepository(db), db, nil
}

// buildReportService wires the transform report mail path. With no
// recipients configured the service sends nothing.
func buildReportService(cfg *config.Config, logger *slog.Logger) (domain.ReportService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer := email.NewTemplateRenderer()
	return services.NewEmailReportService(mailer, renderer, cfg.ReportRecipients, logger), nil
}
