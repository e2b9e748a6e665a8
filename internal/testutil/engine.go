package testutil

import (
	"context"
	"sync"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// FakeEngine is a scriptable ocr.Engine. Output is keyed by the parameter
// set name; unnamed strategies fall back to Default. Strategies listed in
// FailWith return that error instead.
type FakeEngine struct {
	mu sync.Mutex

	// Script maps params.Name to the text the engine should produce.
	Script map[string]string
	// Default is returned when Script has no entry for the strategy.
	Default string
	// FailWith maps params.Name to an error for that strategy.
	FailWith map[string]error
	// FailAll, when set, makes every attempt fail with this error.
	FailAll error

	calls  []ocr.Params
	closed bool
}

var _ ocr.Engine = (*FakeEngine)(nil)

// Recognize returns the scripted text for the strategy, reporting start and
// completion progress like a real engine would.
func (f *FakeEngine) Recognize(ctx context.Context, frame raster.Frame, params ocr.Params, progress ocr.ProgressFunc) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, params)
	failAll := f.FailAll
	failure := f.FailWith[params.Name]
	text, ok := f.Script[params.Name]
	if !ok {
		text = f.Default
	}
	f.mu.Unlock()

	if progress != nil {
		progress(0)
	}
	if failAll != nil {
		return ocr.Result{}, failAll
	}
	if failure != nil {
		return ocr.Result{}, failure
	}
	if progress != nil {
		progress(100)
	}

	return ocr.Result{
		Text:       text,
		Params:     params,
		Provenance: frame.Provenance(),
	}, nil
}

// Close marks the engine closed.
func (f *FakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Calls returns a copy of the recorded parameter sets in call order.
func (f *FakeEngine) Calls() []ocr.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ocr.Params, len(f.calls))
	copy(out, f.calls)
	return out
}

// Closed reports whether Close has been called.
func (f *FakeEngine) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
