package ocr

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// Tesseract adapts the gosseract client to the Engine interface. The client
// is a process-wide resource: acquired on first use, guarded by a mutex
// (libtesseract is not reentrant), and released exactly once via Close.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// NewTesseract initializes the engine and loads its language models.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if client == nil {
		return nil, ErrEngineUnavailable
	}
	return &Tesseract{client: client}, nil
}

// Recognize runs one OCR attempt with the given parameter set. Cancellation
// is by abandonment: the context is checked before the engine is entered,
// never mid-recognition.
func (t *Tesseract) Recognize(ctx context.Context, frame raster.Frame, params Params, progress ProgressFunc) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.client == nil {
		return Result{}, ErrEngineUnavailable
	}

	if progress != nil {
		progress(0)
	}

	if err := t.configure(params); err != nil {
		return Result{}, fmt.Errorf("configure engine: %w", err)
	}

	png, err := raster.EncodePNG(frame)
	if err != nil {
		return Result{}, err
	}
	if err := t.client.SetImageFromBytes(png); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}
	if progress != nil {
		progress(100)
	}

	return Result{Text: text, Params: params, Provenance: frame.Provenance()}, nil
}

func (t *Tesseract) configure(params Params) error {
	langs := params.Languages
	if len(langs) == 0 {
		langs = []string{"swe", "eng"}
	}
	if err := t.client.SetLanguage(langs...); err != nil {
		return err
	}
	if err := t.client.SetPageSegMode(segModeFor(params.SegMode)); err != nil {
		return err
	}
	if err := t.client.SetWhitelist(params.Whitelist); err != nil {
		return err
	}
	if err := t.client.SetVariable("tessedit_ocr_engine_mode", strconv.Itoa(engineModeFor(params.EngineMode))); err != nil {
		return err
	}
	for k, v := range params.Variables {
		if err := t.client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the engine. Safe to call once; subsequent Recognize calls
// report ErrEngineUnavailable.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

func segModeFor(m SegMode) gosseract.PageSegMode {
	switch m {
	case SegSingleWord:
		return gosseract.PSM_SINGLE_WORD
	case SegSparseText:
		return gosseract.PSM_SPARSE_TEXT
	case SegRawLine:
		return gosseract.PSM_RAW_LINE
	default:
		return gosseract.PSM_SINGLE_BLOCK
	}
}

func engineModeFor(m EngineMode) int {
	switch m {
	case EngineLegacy:
		return 0
	case EngineHybrid:
		return 2
	default:
		return 1
	}
}
