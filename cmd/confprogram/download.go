package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"confprogram/config"
	"confprogram/internal/adapters/jsonstore"
	"confprogram/internal/adapters/pretalx"
	"confprogram/internal/domain"
	"confprogram/internal/services"
)

func downloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Fetch submissions, speakers, and the schedule from Pretalx",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger()

			archive, db, err := openArchive(cfg)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			store := jsonstore.New(cfg.DataDir, cfg.Event)
			source := pretalx.NewHTTPSource(nil, cfg.PretalxBaseURL, cfg.PretalxToken, cfg.Event)
			svc := services.NewDownloadService(source, store, archive, cfg.Event, logger)

			report, err := svc.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Downloaded %d submissions and %d speakers for %s in %s\n",
				report.Counts[domain.ResourceSubmissions],
				report.Counts[domain.ResourceSpeakers],
				report.Event,
				report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
			)
			return nil
		},
	}
}
