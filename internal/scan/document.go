package scan

import (
	"context"
	"image"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/enhance"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/products"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// ReceiptResult is the outcome of a document-mode scan. On cancellation the
// result holds everything accumulated so far and is returned together with
// the context error.
type ReceiptResult struct {
	Products []products.Validated
	Vendor   string // empty when no store signature was found
	Text     string // recognized text of the winning variant, or pooled segments
	Score    int    // winning variant score; 0 in segmented mode
	Segments int    // number of segments processed; 0 in ensemble mode
}

// ScanReceipt runs the document-mode pipeline on one frame. Tall frames are
// recognized in overlapping vertical segments with standard enhancement;
// everything else goes through the enhancement-variant ensemble and the
// highest-scoring variant wins. Individual engine attempts may fail freely;
// only a run where every attempt failed reports ErrEngineUnavailable.
func (s *Scanner) ScanReceipt(ctx context.Context, frame raster.Frame, progress ProgressFunc) (ReceiptResult, error) {
	if frame.Empty() {
		return ReceiptResult{}, ocr.ErrEngineUnavailable
	}
	if frame.Height() > s.cfg.TallThreshold {
		return s.scanSegmented(ctx, frame, progress)
	}
	return s.scanEnsemble(ctx, frame, progress)
}

func (s *Scanner) scanSegmented(ctx context.Context, frame raster.Frame, progress ProgressFunc) (ReceiptResult, error) {
	rects := s.segmentRects(frame.Width(), frame.Height())
	prog := newStageProgress(len(rects), progress)

	var (
		texts     []string
		succeeded int
	)
	for i, r := range rects {
		if err := ctx.Err(); err != nil {
			return s.finishReceipt(texts, len(texts), 0), err
		}

		seg := raster.MustFrame(imaging.Crop(frame.Image(), r), frame.Provenance())
		enhanced := s.enhancer.Enhance(seg, enhance.ModeStandard)

		res, err := s.engine.Recognize(ctx, enhanced, ocr.ReceiptParams("receipt_segment"), prog.engineFunc())
		if err != nil {
			slog.Debug("segment recognition failed", "segment", i, "error", err)
			prog.step()
			continue
		}
		succeeded++
		texts = append(texts, res.Text)
		prog.step()
	}

	if succeeded == 0 {
		return ReceiptResult{}, ocr.ErrEngineUnavailable
	}
	prog.finish()
	return s.finishReceipt(texts, len(rects), 0), nil
}

func (s *Scanner) scanEnsemble(ctx context.Context, frame raster.Frame, progress ProgressFunc) (ReceiptResult, error) {
	prog := newStageProgress(len(s.cfg.Variants), progress)

	var (
		bestText  string
		bestScore = -1
		succeeded int
	)
	for _, mode := range s.cfg.Variants {
		if err := ctx.Err(); err != nil {
			if bestScore < 0 {
				return ReceiptResult{}, err
			}
			return s.finishReceipt([]string{bestText}, 0, bestScore), err
		}

		enhanced := s.enhancer.Enhance(frame, mode)
		res, err := s.engine.Recognize(ctx, enhanced, ocr.ReceiptParams("receipt_"+string(mode)), prog.engineFunc())
		if err != nil {
			slog.Debug("variant recognition failed", "variant", mode, "error", err)
			prog.step()
			continue
		}
		succeeded++
		if sc := s.scorer.score(res); sc > bestScore {
			bestScore = sc
			bestText = res.Text
		}
		prog.step()
	}

	if succeeded == 0 {
		return ReceiptResult{}, ocr.ErrEngineUnavailable
	}
	prog.finish()
	return s.finishReceipt([]string{bestText}, 0, bestScore), nil
}

// finishReceipt runs product extraction over the pooled recognized text.
func (s *Scanner) finishReceipt(texts []string, segments, score int) ReceiptResult {
	text := strings.Join(texts, "\n")

	var lines []string
	for _, t := range texts {
		lines = append(lines, ocr.Result{Text: t}.Lines()...)
	}

	out := ReceiptResult{
		Products: s.extractor.ExtractProducts(lines),
		Text:     text,
		Score:    score,
		Segments: segments,
	}
	if v, ok := products.DetectVendor(text); ok {
		out.Vendor = v.Name
	}
	return out
}

// segmentRects splits a tall frame into overlapping horizontal bands, capped
// at MaxSegments. The final band is anchored to the bottom edge so no pixels
// are dropped.
func (s *Scanner) segmentRects(w, h int) []image.Rectangle {
	step := s.cfg.SegmentHeight - s.cfg.SegmentOverlap
	var rects []image.Rectangle
	for y := 0; ; y += step {
		if len(rects) >= s.cfg.MaxSegments {
			break
		}
		bottom := y + s.cfg.SegmentHeight
		if bottom >= h {
			top := h - s.cfg.SegmentHeight
			if top < 0 {
				top = 0
			}
			rects = append(rects, image.Rect(0, top, w, h))
			break
		}
		rects = append(rects, image.Rect(0, y, w, bottom))
	}
	return rects
}
