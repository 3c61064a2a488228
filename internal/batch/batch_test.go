package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const validCSV = `Curriculum,Intro Track
Institution,Test University
System Type,Semester
Courses
Course ID,Prefix,Number,Course Name,Credit Hours,Prerequisites
C1,CS,101,Intro to Programming,3,
C2,CS,102,Data Structures,3,C1
`

const cyclicCSV = `Courses
Course ID,Prefix,Number,Prerequisites
C1,CS,101,C2
C2,CS,102,C1
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestRunSucceedsAndWritesOutputs(t *testing.T) {
	path := writeTemp(t, "plan.csv", validCSV)
	outDir := filepath.Dir(path)

	summary := Run([]string{path}, Options{
		TargetCreditsPerTerm: 15,
		MetricsOutDir:        outDir,
		ReportOutDir:         outDir,
		ReportFormat:         FormatMarkdown,
	}, zerolog.Nop())

	if summary.FilesFailed != 0 {
		t.Fatalf("FilesFailed = %d, want 0; outcome: %+v", summary.FilesFailed, summary.Outcomes[0].Err)
	}
	if summary.FilesSucceeded != 1 {
		t.Fatalf("FilesSucceeded = %d, want 1", summary.FilesSucceeded)
	}

	outcome := summary.Outcomes[0]
	if _, err := os.Stat(outcome.MetricsCSVPath); err != nil {
		t.Errorf("metrics CSV not written: %v", err)
	}
	if _, err := os.Stat(outcome.ReportPath); err != nil {
		t.Errorf("report not written: %v", err)
	}

	metricsBytes, err := os.ReadFile(outcome.MetricsCSVPath)
	if err != nil {
		t.Fatalf("read metrics csv: %v", err)
	}
	if !strings.Contains(string(metricsBytes), "Courses") {
		t.Errorf("metrics csv missing Courses marker:\n%s", metricsBytes)
	}
}

func TestRunSkipsFileWithCycleAndContinuesBatch(t *testing.T) {
	cyclicPath := writeTemp(t, "cyclic.csv", cyclicCSV)
	validPath := writeTemp(t, "valid.csv", validCSV)

	summary := Run([]string{cyclicPath, validPath}, Options{
		TargetCreditsPerTerm: 15,
		NoCSV:                true,
		NoReport:             true,
	}, zerolog.Nop())

	if summary.FilesProcessed != 2 {
		t.Fatalf("FilesProcessed = %d, want 2", summary.FilesProcessed)
	}
	if summary.FilesFailed != 1 {
		t.Fatalf("FilesFailed = %d, want 1", summary.FilesFailed)
	}
	if summary.FilesSucceeded != 1 {
		t.Fatalf("FilesSucceeded = %d, want 1", summary.FilesSucceeded)
	}
	if summary.Outcomes[0].Err == nil {
		t.Error("cyclic file outcome.Err = nil, want CyclicPrerequisites error")
	}
	if summary.Outcomes[1].Err != nil {
		t.Errorf("valid file outcome.Err = %v, want nil", summary.Outcomes[1].Err)
	}
}

func TestRunSecondPassHitsCache(t *testing.T) {
	path := writeTemp(t, "plan.csv", validCSV)
	outDir := filepath.Dir(path)
	cacheDir := t.TempDir()

	opts := Options{
		TargetCreditsPerTerm: 15,
		MetricsOutDir:        outDir,
		NoReport:             true,
		CacheDir:             cacheDir,
	}

	first := Run([]string{path}, opts, zerolog.Nop())
	if first.Outcomes[0].CacheHit {
		t.Fatal("first run: CacheHit = true, want false")
	}
	firstBytes, err := os.ReadFile(first.Outcomes[0].MetricsCSVPath)
	if err != nil {
		t.Fatalf("read metrics csv: %v", err)
	}

	second := Run([]string{path}, opts, zerolog.Nop())
	if !second.Outcomes[0].CacheHit {
		t.Fatal("second run: CacheHit = false, want true")
	}
	if second.Outcomes[0].Model != nil {
		t.Error("second run: Model should be nil on a cache hit")
	}
	secondBytes, err := os.ReadFile(second.Outcomes[0].MetricsCSVPath)
	if err != nil {
		t.Fatalf("read cached metrics csv: %v", err)
	}
	if string(secondBytes) != string(firstBytes) {
		t.Errorf("cached metrics csv differs from original run")
	}
}
