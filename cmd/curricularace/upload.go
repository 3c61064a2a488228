package main

import (
	"os"
	"path/filepath"
)

// writeTempUpload persists a submitted job's raw CSV bytes under
// data/jobs/<id>.csv so the existing file-based pipeline in
// internal/batch can process it like any other input file.
func writeTempUpload(jobID string, csvBytes []byte) (string, error) {
	dir := "data/jobs"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, jobID+".csv")
	if err := os.WriteFile(path, csvBytes, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
