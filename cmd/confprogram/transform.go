package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"confprogram/config"
	"confprogram/internal/adapters/jsonstore"
	"confprogram/internal/services"
)

func transformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Build the published dataset from the downloaded Pretalx data",
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

			reports, err := buildReportService(cfg, logger)
			if err != nil {
				return err
			}

			store := jsonstore.New(cfg.DataDir, cfg.Event)
			svc := services.NewTransformService(store, archive, reports, cfg.Event, cfg.WebsiteURL, logger)

			report, err := svc.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("transform: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Published %d sessions, %d speakers, %d schedule days for %s in %s\n",
				report.Sessions,
				report.Speakers,
				report.ScheduleDays,
				report.Event,
				report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
			)
			return nil
		},
	}
}
