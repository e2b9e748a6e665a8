// Package scan orchestrates the recognition pipeline: it decides which
// enhanced frames to feed the OCR engine with which parameter sets, judges
// the output, and turns it into validated products or resolved dates.
package scan

import (
	"errors"
	"fmt"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/dates"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/enhance"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/products"
)

// Config holds orchestrator tuning. All values are configuration, not
// domain law; the defaults reflect the geometry the engine handles
// reliably.
type Config struct {
	// Frames taller than TallThreshold are processed in overlapping
	// vertical segments instead of the variant ensemble.
	TallThreshold  int
	SegmentHeight  int
	SegmentOverlap int
	MaxSegments    int

	// Variants tried (each with its own enhancement) on short frames.
	Variants []enhance.Mode

	Weights Weights
	Enhance enhance.Config
	Match   products.MatchConfig
	DateCfg dates.Config
}

// DefaultConfig returns orchestrator defaults.
func DefaultConfig() Config {
	return Config{
		TallThreshold:  1800,
		SegmentHeight:  1800,
		SegmentOverlap: 400,
		MaxSegments:    20,
		Variants:       []enhance.Mode{enhance.ModeStandard, enhance.ModeHighContrast, enhance.ModeSoft},
		Weights:        DefaultWeights(),
		Enhance:        enhance.DefaultConfig(),
		Match:          products.DefaultMatchConfig(),
		DateCfg:        dates.DefaultConfig(),
	}
}

// Scanner wires the enhancement stage, the OCR engine, the product
// extractor and the date recovery engine into the two public operations.
type Scanner struct {
	cfg       Config
	engine    ocr.Engine
	enhancer  *enhance.Enhancer
	extractor *products.Extractor
	scorer    *scorer
	dateEng   *dates.Engine
}

// Builder constructs a Scanner with fluent configuration.
type Builder struct {
	cfg    Config
	engine ocr.Engine
}

// NewBuilder creates a scanner builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithEngine sets the OCR engine. Required.
func (b *Builder) WithEngine(e ocr.Engine) *Builder {
	b.engine = e
	return b
}

// WithConfig replaces the whole orchestrator configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithWeights overrides the document-mode scoring weights.
func (b *Builder) WithWeights(w Weights) *Builder {
	b.cfg.Weights = w
	return b
}

// WithSegmentGeometry overrides the document segmentation geometry.
func (b *Builder) WithSegmentGeometry(height, overlap, maxSegments int) *Builder {
	if height > 0 {
		b.cfg.SegmentHeight = height
		b.cfg.TallThreshold = height
	}
	if overlap >= 0 {
		b.cfg.SegmentOverlap = overlap
	}
	if maxSegments > 0 {
		b.cfg.MaxSegments = maxSegments
	}
	return b
}

// WithDateWindow overrides the date plausibility configuration.
func (b *Builder) WithDateWindow(cfg dates.Config) *Builder {
	b.cfg.DateCfg = cfg
	return b
}

// Build initializes the scanner components.
func (b *Builder) Build() (*Scanner, error) {
	if b.engine == nil {
		return nil, errors.New("scanner requires an OCR engine")
	}
	if b.cfg.SegmentHeight <= b.cfg.SegmentOverlap {
		return nil, fmt.Errorf("segment height %d must exceed overlap %d",
			b.cfg.SegmentHeight, b.cfg.SegmentOverlap)
	}

	vocab, err := products.LoadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}
	validator := products.NewValidator(vocab, b.cfg.Match)

	return &Scanner{
		cfg:       b.cfg,
		engine:    b.engine,
		enhancer:  enhance.New(b.cfg.Enhance),
		extractor: products.NewExtractor(validator),
		scorer:    newScorer(b.cfg.Weights, vocab),
		dateEng:   dates.New(b.cfg.DateCfg),
	}, nil
}

// Config returns a copy of the scanner configuration.
func (s *Scanner) Config() Config { return s.cfg }

// Dates exposes the date recovery engine, mainly so callers and tests can
// pin its clock.
func (s *Scanner) Dates() *dates.Engine { return s.dateEng }

// Close releases the OCR engine. The scanner must not be used afterwards.
func (s *Scanner) Close() error {
	if s.engine == nil {
		return nil
	}
	err := s.engine.Close()
	s.engine = nil
	return err
}
