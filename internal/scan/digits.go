package scan

import (
	"context"
	"log/slog"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/dates"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/enhance"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// ExpiryResult is the outcome of a digit-focus scan. Dates are plausible,
// deduplicated and sorted ascending; Best is the earliest one, the safest
// choice for an expiry decision. Strategies records per-strategy hit counts
// for diagnostics.
type ExpiryResult struct {
	Dates      []dates.Date
	Best       dates.Date
	Found      bool
	Strategies map[string]int
}

// ScanExpiry runs the digit-focus pipeline on one frame: the frame is
// enhanced once in digit-focus mode, then every digit strategy is run
// against it and all harvested dates are pooled. Strategies are
// complementary, not ranked; pooling plus deduplication means strategy
// order never changes the result set. Cancellation between strategies
// returns the dates accumulated so far together with the context error.
func (s *Scanner) ScanExpiry(ctx context.Context, frame raster.Frame, progress ProgressFunc) (ExpiryResult, error) {
	if frame.Empty() {
		return ExpiryResult{}, ocr.ErrEngineUnavailable
	}

	enhanced := s.enhancer.Enhance(frame, enhance.ModeDigitFocus)

	strategies := ocr.DigitStrategies()
	prog := newStageProgress(len(strategies), progress)

	var (
		pooled    []dates.Date
		hits      = make(map[string]int, len(strategies))
		succeeded int
	)
	for _, params := range strategies {
		if err := ctx.Err(); err != nil {
			return finishExpiry(pooled, hits), err
		}

		res, err := s.engine.Recognize(ctx, enhanced, params, prog.engineFunc())
		if err != nil {
			slog.Debug("digit strategy failed", "strategy", params.Name, "error", err)
			prog.step()
			continue
		}
		succeeded++

		found := s.dateEng.ExtractDates(res.Text)
		if len(found) > 0 {
			hits[params.Name] = len(found)
		}
		pooled = append(pooled, found...)
		prog.step()
	}

	if succeeded == 0 {
		return ExpiryResult{}, ocr.ErrEngineUnavailable
	}
	prog.finish()
	return finishExpiry(pooled, hits), nil
}

func finishExpiry(pooled []dates.Date, hits map[string]int) ExpiryResult {
	deduped := dedupeDates(pooled)
	out := ExpiryResult{Dates: deduped, Strategies: hits}
	if len(deduped) > 0 {
		out.Best = deduped[0]
		out.Found = true
	}
	return out
}

// dedupeDates merges the per-strategy date lists. Each list is already
// sorted, so an insertion pass over the ISO keys keeps the pool ordered.
func dedupeDates(in []dates.Date) []dates.Date {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]dates.Date, 0, len(in))
	for _, d := range in {
		key := d.ISO()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	// Pooling across strategies can interleave; restore the ascending order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Before(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
