// Package batch scans many receipt images in parallel, for households
// importing a backlog of photographed receipts at once.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
)

// Config holds batch processing configuration.
type Config struct {
	// Workers is the number of parallel scan workers.
	Workers int

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// ContinueOnError keeps the batch running when one image fails.
	ContinueOnError bool

	Format     string
	OutputFile string
	Quiet      bool
}

// DefaultConfig returns batch defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         4,
		ContinueOnError: true,
		Format:          "json",
	}
}

// FileResult pairs one input image with its scan outcome.
type FileResult struct {
	Path    string             `json:"path"`
	Receipt scan.ReceiptResult `json:"receipt"`
	Err     error              `json:"-"`
	Error   string             `json:"error,omitempty"`
}

// Result holds the outcome of a whole batch run.
type Result struct {
	Files       []FileResult  `json:"files"`
	Duration    time.Duration `json:"duration_ns"`
	WorkerCount int           `json:"workers"`
	Failed      int           `json:"failed"`
}

// ProcessBatch discovers image files under the given paths and scans them
// with the scanner, Workers files at a time. The scanner is borrowed, not
// owned; the caller closes it.
func ProcessBatch(ctx context.Context, scanner *scan.Scanner, paths []string, cfg Config) (*Result, error) {
	files, err := discoverImageFiles(paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	results, err := scanFilesParallel(ctx, scanner, files, workers, cfg.ContinueOnError)
	if err != nil {
		return nil, err
	}

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			results[i].Error = results[i].Err.Error()
			failed++
		}
	}

	return &Result{
		Files:       results,
		Duration:    time.Since(start),
		WorkerCount: workers,
		Failed:      failed,
	}, nil
}
