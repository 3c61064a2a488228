// Package batchlog wraps zerolog with the per-file/per-plan structured
// fields a batch run needs to report outcomes across many curriculum
// files in one pass.
package batchlog

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a process-wide logger: console-pretty when stderr is a
// terminal, structured JSON otherwise.
func New(verbose bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if isTerminal(os.Stderr) {
		out := zerolog.ConsoleWriter{Out: os.Stderr}
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// ForFile returns a child logger carrying the file's path, for every log
// line emitted while processing that one curriculum file.
func ForFile(log zerolog.Logger, file string) zerolog.Logger {
	return log.With().Str("file", file).Logger()
}

// ForPlan returns a child logger also carrying the plan's curriculum
// name, for use once a file has parsed far enough to know it.
func ForPlan(log zerolog.Logger, file, planName string) zerolog.Logger {
	return log.With().Str("file", file).Str("plan", planName).Logger()
}
