package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"confprogram/config"
	"confprogram/internal/adapters/jsonstore"
	delivery "confprogram/internal/delivery/http"
	"confprogram/internal/delivery/http/controllers"
	"confprogram/internal/delivery/http/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the published dataset over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger()

			store := jsonstore.New(cfg.DataDir, cfg.Event)
			dataset := controllers.NewDatasetController(logger, store)
			mux := delivery.NewRouter(dataset, cfg.ServeToken)

			handler := middleware.CORS(cfg.CORSAllowedOrigins,
				middleware.LoggingMiddleware(logger, mux))

			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("dataset server listening", "addr", server.Addr, "event", cfg.Event)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("dataset server stopped")
			return nil
		},
	}
}
