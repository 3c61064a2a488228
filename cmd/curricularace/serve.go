package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"curricularace/internal/auth"
	"curricularace/internal/batch"
	"curricularace/internal/batchlog"
	"curricularace/internal/jobstore"
	"curricularace/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for submitting curricula to a shared runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig()
			if addr == "" {
				addr = cfg.Addr
			}
			log := batchlog.New(false)

			ctx := context.Background()
			jobs, err := jobstore.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open job store: %w", err)
			}
			defer jobs.Close()

			idem, err := server.NewIdempotencyStore(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("open idempotency store: %w", err)
			}
			defer idem.Close()

			apiKeyHash, err := auth.HashAPIKey(cfg.APIKey)
			if err != nil {
				return fmt.Errorf("hash api key: %w", err)
			}

			srv := &server.Server{
				Jobs:      jobs,
				Idem:      idem,
				JWTSecret: []byte(cfg.JWTSecret),
				APIKeys:   map[string]string{cfg.ClientID: apiKeyHash},
				Log:       log,
				Runner:    runnerFor(cfg.TargetCreditsPerTerm),
			}

			log.Info().Str("addr", addr).Msg("starting server")
			return http.ListenAndServe(addr, srv.NewRouter())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to CURRICULARACE_ADDR)")
	return cmd
}

// runnerFor adapts batch.Run to the single-file, in-memory-bytes shape
// internal/server needs: a submitted job has no path on disk until it's
// written here, out under the server's own metrics/report directories.
func runnerFor(targetCredits float64) server.JobRunner {
	return func(jobID string, csvBytes []byte) (metricsPath, reportPath string, err error) {
		tmpFile, err := writeTempUpload(jobID, csvBytes)
		if err != nil {
			return "", "", err
		}

		opts := batch.Options{
			TargetCreditsPerTerm: targetCredits,
			MetricsOutDir:        "data/jobs",
			ReportOutDir:         "data/jobs",
			ReportFormat:         batch.FormatMarkdown,
		}
		summary := batch.Run([]string{tmpFile}, opts, batchlog.New(false))
		if summary.FilesFailed > 0 {
			return "", "", summary.Outcomes[0].Err
		}
		outcome := summary.Outcomes[0]
		return outcome.MetricsCSVPath, outcome.ReportPath, nil
	}
}
