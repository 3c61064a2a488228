// Command seedcorpus primes the local analysis cache with a batch of
// curriculum CSVs, so a first real "analyze" run against the same files
// hits a warm cache instead of recomputing everything.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"curricularace/internal/batch"
	"curricularace/internal/batchlog"
	"curricularace/internal/runcache"
)

func main() {
	dir := flag.String("dir", "testdata/corpus", "directory of curriculum CSVs to seed")
	cacheDir := flag.String("cache-dir", ".curricularace", "directory holding cache.db")
	targetCredits := flag.Float64("target-credits", 15, "target credits per term used to key cache entries")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*cacheDir, 0o755); err != nil {
		log.Fatal(err)
	}
	cache, err := runcache.Open(*cacheDir)
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		paths = append(paths, filepath.Join(*dir, e.Name()))
	}
	fmt.Printf("seeding %d curriculum files\n", len(paths))

	logger := batchlog.New(false)
	summary := batch.Run(paths, batch.Options{
		TargetCreditsPerTerm: *targetCredits,
		NoReport:             true,
	}, logger)

	for _, outcome := range summary.Outcomes {
		if outcome.Err != nil {
			fmt.Printf("skip %s: %v\n", outcome.File, outcome.Err)
			continue
		}
		raw, err := os.ReadFile(outcome.File)
		if err != nil {
			fmt.Printf("skip %s: %v\n", outcome.File, err)
			continue
		}
		metricsCSV, err := os.ReadFile(outcome.MetricsCSVPath)
		if err != nil {
			fmt.Printf("skip %s: %v\n", outcome.File, err)
			continue
		}
		key := runcache.Key(raw, *targetCredits)
		if err := cache.Put(key, metricsCSV); err != nil {
			fmt.Printf("cache put failed for %s: %v\n", outcome.File, err)
		}
	}

	fmt.Printf("%d/%d seeded\n", summary.FilesSucceeded, summary.FilesProcessed)
}
