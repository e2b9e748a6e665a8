package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
)

// scanFilesParallel fans the file list out over a worker pool. Results come
// back in input order regardless of completion order.
func scanFilesParallel(ctx context.Context, scanner *scan.Scanner, files []string, workers int, continueOnError bool) ([]FileResult, error) {
	type job struct {
		index int
		path  string
	}

	jobs := make(chan job)
	results := make([]FileResult, len(files))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failErr  error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := scanOne(runCtx, scanner, j.path)
				results[j.index] = res
				if res.Err != nil && !continueOnError {
					failOnce.Do(func() {
						failErr = fmt.Errorf("scan failed for %s: %w", j.path, res.Err)
						cancel()
					})
					return
				}
			}
		}()
	}

feed:
	for i, path := range files {
		select {
		case jobs <- job{index: i, path: path}:
		case <-runCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if failErr != nil {
		return nil, failErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanOne(ctx context.Context, scanner *scan.Scanner, path string) FileResult {
	frame, err := raster.Load(path)
	if err != nil {
		slog.Warn("failed to load image", "file", path, "error", err)
		return FileResult{Path: path, Err: err}
	}

	receipt, err := scanner.ScanReceipt(ctx, frame, nil)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, Receipt: receipt}
}
