// Package ocr abstracts the external text-recognition engine behind a small
// interface. The pipeline decides what image to feed the engine, with which
// parameters, and how to judge the output; the engine itself is a black box.
package ocr

import (
	"context"
	"errors"
	"strings"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// ErrEngineUnavailable indicates the engine could not be initialized or
// crashed outright. It is the only error the pipeline surfaces to callers;
// per-attempt failures degrade to empty results instead.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// SegMode selects how the engine should assume text is laid out.
type SegMode int

const (
	SegUniformBlock SegMode = iota
	SegSingleWord
	SegSparseText
	SegRawLine
)

// EngineMode selects the recognition backend inside the engine.
type EngineMode int

const (
	EngineNeural EngineMode = iota
	EngineLegacy
	EngineHybrid
)

// Params is a named, opaque engine configuration. One pipeline run may try
// several.
type Params struct {
	Name       string
	Languages  []string
	Whitelist  string // allowed characters; empty means unrestricted
	SegMode    SegMode
	EngineMode EngineMode
	// Variables carries engine-specific tuning flags verbatim.
	Variables map[string]string
}

// Result is the raw engine output for one (frame, params) attempt.
type Result struct {
	Text   string
	Params Params
	// Provenance of the frame that produced this text.
	Provenance raster.Provenance
}

// Lines splits the recognized text into trimmed, non-empty lines in engine
// order.
func (r Result) Lines() []string {
	raw := strings.Split(r.Text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// ProgressFunc receives coarse intra-recognition progress in [0,100].
type ProgressFunc func(percent int)

// Engine is the external recognizer. Implementations must be safe for
// sequential reuse; Close releases the engine exactly once.
type Engine interface {
	Recognize(ctx context.Context, frame raster.Frame, params Params, progress ProgressFunc) (Result, error)
	Close() error
}
