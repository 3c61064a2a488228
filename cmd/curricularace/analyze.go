package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"curricularace/internal/batch"
	"curricularace/internal/batchlog"
)

func analyzeCmd() *cobra.Command {
	var (
		targetCredits float64
		metricsOutDir string
		reportOutDir  string
		reportFormat  string
		cacheDir      string
		noCSV         bool
		noReport      bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [csv files...]",
		Short: "Compute metrics, build a term schedule, and render a report for one or more curriculum CSVs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := batchlog.New(verbose)

			cfg := loadedConfig()
			if !cmd.Flags().Changed("target-credits") {
				targetCredits = cfg.TargetCreditsPerTerm
			}
			if !cmd.Flags().Changed("cache-dir") {
				cacheDir = cfg.CacheDir
			}

			opts := batch.Options{
				TargetCreditsPerTerm: targetCredits,
				MetricsOutDir:        metricsOutDir,
				ReportOutDir:         reportOutDir,
				ReportFormat:         batch.ReportFormat(reportFormat),
				CacheDir:             cacheDir,
				NoCSV:                noCSV,
				NoReport:             noReport,
			}

			summary := batch.Run(args, opts, log)
			printSummary(cmd, summary)

			if summary.FilesFailed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&targetCredits, "target-credits", 15, "Soft per-term credit budget")
	cmd.Flags().StringVar(&metricsOutDir, "metrics-out", "", "Directory for metrics CSV output (defaults next to input file)")
	cmd.Flags().StringVar(&reportOutDir, "report-out", "", "Directory for report output (defaults next to input file)")
	cmd.Flags().StringVar(&reportFormat, "report-format", "markdown", "Report format: markdown, html, pdf, csv")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory holding a runcache database; a hit skips re-parsing and re-scoring that file")
	cmd.Flags().BoolVar(&noCSV, "no-csv", false, "Skip writing the metrics CSV")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing the report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func printSummary(cmd *cobra.Command, summary batch.Summary) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tCOURSES\tUNSCHEDULED")
	for _, o := range summary.Outcomes {
		status := "ok"
		courses := 0
		unscheduled := 0
		switch {
		case o.Err != nil:
			status = "failed: " + o.Err.Error()
		case o.CacheHit:
			status = "ok (cached)"
		default:
			courses = len(o.Model.Courses)
			unscheduled = len(o.UnplaceableWarn)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", o.File, status, courses, unscheduled)
	}
	tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d processed, %d succeeded, %d failed\n",
		summary.FilesProcessed, summary.FilesSucceeded, summary.FilesFailed)
}
