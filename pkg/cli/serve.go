package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secops-lab/panoptes/pkg/cli/config"
	httpctrl "github.com/secops-lab/panoptes/pkg/controller/http"
	"github.com/secops-lab/panoptes/pkg/service/archive"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
	"github.com/secops-lab/panoptes/pkg/service/scorer"
	"github.com/secops-lab/panoptes/pkg/usecase"
	"github.com/secops-lab/panoptes/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PANOPTES_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := appCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			catalogSvc, err := catalog.New(repo.Mitigation(), appCfg.SeededMitigations())
			if err != nil {
				return goerr.Wrap(err, "failed to build mitigation catalog")
			}

			ucOpts := []usecase.Option{
				usecase.WithCatalog(catalogSvc),
				usecase.WithOrganizationID(appCfg.Organization.ID),
			}

			// AI scoring and detection need a Gemini project
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				scorerSvc, err := scorer.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize scorer")
				}
				ucOpts = append(ucOpts, usecase.WithScorer(scorerSvc))
				ucOpts = append(ucOpts, usecase.WithDetectionEnabled(appCfg.AI.Enabled))
				logging.Default().Info("AI risk scoring enabled", "detection", appCfg.AI.Enabled)
			} else {
				logging.Default().Info("Gemini project not configured, entities get the default assessment")
			}

			if appCfg.Archive.Bucket != "" {
				archiveSvc, err := archive.New(ctx, appCfg.Archive.Bucket)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize snapshot archiver")
				}
				defer func() {
					if err := archiveSvc.Close(); err != nil {
						logging.Default().Error("failed to close archiver", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithArchiver(archiveSvc))
				logging.Default().Info("Snapshot archiving enabled", "bucket", appCfg.Archive.Bucket)
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack notifications enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
