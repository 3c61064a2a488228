// Package batch implements the analyze(paths, options) entry point: it
// drives one curriculum file through the full pipeline — CSV read, plan
// load, graph build, metrics, schedule, report — and aggregates outcomes
// across a whole run.
package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"curricularace/internal/batchlog"
	"curricularace/internal/csvio"
	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
	"curricularace/internal/metrics"
	"curricularace/internal/report"
	"curricularace/internal/runcache"
	"curricularace/internal/schedule"
)

// ReportFormat selects the optional report renderer.
type ReportFormat string

const (
	FormatCSV      ReportFormat = "csv"
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
)

// Options configures one analyze() run.
type Options struct {
	TargetCreditsPerTerm float64
	MetricsOutDir        string
	ReportOutDir         string
	ReportFormat         ReportFormat
	NoCSV                bool
	NoReport             bool

	// CacheDir, when set, opens an internal/runcache database there and
	// consults it before analyzing each file: a hit writes the cached
	// metrics CSV straight through and skips parsing, graph-building,
	// and scoring that file entirely.
	CacheDir string
}

// FileOutcome is one file's result: either a populated Model plus the
// paths the metrics CSV and report were written to, or an error. CacheHit is true when the
// outcome came from runcache instead of a fresh run, in which case
// Model is nil — the cache stores rendered metrics CSV bytes only.
type FileOutcome struct {
	File            string
	Err             error
	MetricsCSVPath  string
	ReportPath      string
	Model           *report.Model
	UnplaceableWarn []string
	CacheHit        bool
}

// Summary aggregates outcomes across the whole batch, per §12's
// run-summary supplement.
type Summary struct {
	FilesProcessed int
	FilesSucceeded int
	FilesFailed    int
	TotalCourses   int
	Outcomes       []FileOutcome
}

// Run processes every path sequentially — each file's Plan is fully
// independent and the pipeline holds no state across files — and
// returns a non-zero-exit-worthy Summary plus the individual outcomes.
func Run(paths []string, opts Options, log zerolog.Logger) Summary {
	var summary Summary

	var cache *runcache.Cache
	if opts.CacheDir != "" {
		if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
			log.Warn().Err(err).Str("cache_dir", opts.CacheDir).Msg("cache unavailable, running uncached")
		} else if c, err := runcache.Open(opts.CacheDir); err != nil {
			log.Warn().Err(err).Str("cache_dir", opts.CacheDir).Msg("cache unavailable, running uncached")
		} else {
			cache = c
			defer cache.Close()
		}
	}

	for _, path := range paths {
		flog := batchlog.ForFile(log, path)
		outcome := processFile(path, opts, cache, flog)
		summary.Outcomes = append(summary.Outcomes, outcome)
		summary.FilesProcessed++
		if outcome.Err != nil {
			summary.FilesFailed++
			flog.Error().Err(outcome.Err).Msg("file failed")
			continue
		}
		summary.FilesSucceeded++
		if outcome.Model != nil {
			summary.TotalCourses += len(outcome.Model.Courses)
		}
		if len(outcome.UnplaceableWarn) > 0 {
			flog.Warn().Strs("unscheduled", outcome.UnplaceableWarn).Msg("courses left unscheduled")
		}
	}

	log.Info().
		Int("processed", summary.FilesProcessed).
		Int("succeeded", summary.FilesSucceeded).
		Int("failed", summary.FilesFailed).
		Int("total_courses", summary.TotalCourses).
		Msg("batch complete")

	return summary
}

func processFile(path string, opts Options, cache *runcache.Cache, log zerolog.Logger) FileOutcome {
	outcome := FileOutcome{File: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		outcome.Err = curriculum.NewError(curriculum.IoFailure, path, nil, "open: %v", err)
		return outcome
	}

	var cacheKey string
	if cache != nil {
		cacheKey = runcache.Key(raw, opts.TargetCreditsPerTerm)
		if cached, ok, err := cache.Get(cacheKey); err != nil {
			log.Warn().Err(err).Msg("cache lookup failed, running uncached")
		} else if ok {
			outcome.CacheHit = true
			log.Info().Msg("cache hit, skipping parse and scoring")
			if !opts.NoCSV {
				dest := outputPath(path, opts.MetricsOutDir, ".metrics.csv")
				if err := atomicWrite(dest, cached); err != nil {
					outcome.Err = curriculum.NewError(curriculum.IoFailure, path, nil, "write cached metrics csv: %v", err)
					return outcome
				}
				outcome.MetricsCSVPath = dest
			}
			return outcome
		}
	}

	pf, err := csvio.Parse(bytes.NewReader(raw), path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	plan, err := csvio.LoadPlan(pf, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	g := graph.Build(plan)
	if err := graph.DetectCycle(g, path); err != nil {
		outcome.Err = err
		return outcome
	}

	topo := graph.TopoSort(g)
	table, agg := metrics.Compute(g, topo, plan)

	target := opts.TargetCreditsPerTerm
	if target <= 0 {
		target = 15
	}
	sched := schedule.Build(plan, g, table, target)
	outcome.UnplaceableWarn = sched.Unscheduled

	model := report.Build(plan, g, table, agg, sched)
	outcome.Model = model

	var metricsCSV bytes.Buffer
	if err := report.RenderCSV(&metricsCSV, model); err != nil {
		outcome.Err = curriculum.NewError(curriculum.IoFailure, path, nil, "render metrics csv: %v", err)
		return outcome
	}

	if !opts.NoCSV {
		dest := outputPath(path, opts.MetricsOutDir, ".metrics.csv")
		if err := atomicWrite(dest, metricsCSV.Bytes()); err != nil {
			outcome.Err = curriculum.NewError(curriculum.IoFailure, path, nil, "write metrics csv: %v", err)
			return outcome
		}
		outcome.MetricsCSVPath = dest
	}

	if cache != nil {
		if err := cache.Put(cacheKey, metricsCSV.Bytes()); err != nil {
			log.Warn().Err(err).Msg("cache write failed, continuing")
		}
	}

	if !opts.NoReport {
		p, err := writeReport(model, path, opts)
		if err != nil {
			outcome.Err = curriculum.NewError(curriculum.IoFailure, path, nil, "write report: %v", err)
			return outcome
		}
		outcome.ReportPath = p
	}

	return outcome
}

// writeReport accumulates bytes in memory and writes once, so a failed
// file never leaves a partial output on disk.
func writeReport(m *report.Model, sourcePath string, opts Options) (string, error) {
	var buf bytes.Buffer
	ext := ".md"
	var err error
	switch opts.ReportFormat {
	case FormatHTML:
		ext = ".html"
		err = report.RenderHTML(&buf, m)
	case FormatPDF:
		ext = ".pdf"
		err = report.RenderPDF(&buf, m)
	case FormatCSV:
		ext = ".report.csv"
		err = report.RenderCSV(&buf, m)
	default:
		err = report.RenderMarkdown(&buf, m)
	}
	if err != nil {
		return "", err
	}
	dest := outputPath(sourcePath, opts.ReportOutDir, ext)
	return dest, atomicWrite(dest, buf.Bytes())
}

func outputPath(sourcePath, outDir, suffix string) string {
	base := filepath.Base(sourcePath)
	name := base[:len(base)-len(filepath.Ext(base))] + suffix
	if outDir == "" {
		return filepath.Join(filepath.Dir(sourcePath), name)
	}
	return filepath.Join(outDir, name)
}

// atomicWrite writes to a temp file in the destination directory and
// renames it into place, so a crash mid-write never leaves a partial
// file at dest.
func atomicWrite(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
