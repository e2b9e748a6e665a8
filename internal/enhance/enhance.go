// Package enhance implements the adaptive image enhancement stage that
// prepares captured frames for OCR. All operations produce fresh buffers;
// input frames are never modified.
package enhance

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// Mode selects the enhancement profile applied to a frame.
type Mode string

const (
	ModeStandard     Mode = "standard"
	ModeHighContrast Mode = "high_contrast"
	ModeSoft         Mode = "soft"
	// ModeDigitFocus is used only for expiry-date scanning. It upscales
	// aggressively and binarizes to make small printed digits resolvable.
	ModeDigitFocus Mode = "digit_focus"
)

// Config holds the tunable knobs of the enhancement stage.
type Config struct {
	// Tile size for local adaptive histogram equalization.
	TileSize int
	// ClipLimit caps per-tile histogram bins as a multiple of the uniform
	// bin height; the clipped excess is redistributed.
	ClipLimit float64
	// Unsharp mask amount and the local-difference gate below which no
	// sharpening is applied (suppresses amplified sensor noise).
	UnsharpAmount  float64
	NoiseThreshold int
	// Brightness multiplier used by the soft mode, in percent.
	SoftBrightness float64
	// Reference luminance/contrast targets driving the adaptive gamma and
	// contrast transforms.
	TargetLuma     float64
	TargetContrast float64
}

// DefaultConfig returns the enhancement defaults tuned for receipt photos.
func DefaultConfig() Config {
	return Config{
		TileSize:       64,
		ClipLimit:      2.5,
		UnsharpAmount:  0.7,
		NoiseThreshold: 8,
		SoftBrightness: 5,
		TargetLuma:     128,
		TargetContrast: 48,
	}
}

// Enhancer applies mode-specific enhancement to captured frames.
type Enhancer struct {
	cfg Config
}

// New creates an Enhancer with the given configuration.
func New(cfg Config) *Enhancer {
	if cfg.TileSize <= 0 {
		cfg.TileSize = 64
	}
	if cfg.ClipLimit <= 1 {
		cfg.ClipLimit = 2.5
	}
	return &Enhancer{cfg: cfg}
}

// Enhance produces a new frame tuned for text legibility. It never fails:
// on degenerate input (zero-variance frames, tiny buffers) it returns the
// plain upscaled frame instead.
func (e *Enhancer) Enhance(frame raster.Frame, mode Mode) raster.Frame {
	if frame.Empty() {
		return frame
	}

	stats := raster.ComputeStats(frame.Image())
	up := e.upscale(frame.Image(), mode)

	if stats.Contrast <= 0 || math.IsNaN(stats.MeanLuma) {
		// Nothing to adapt against; the upscale alone is still useful.
		return raster.MustFrame(up, provenanceOf(mode))
	}

	img := imaging.AdjustGamma(up, e.gammaFor(stats))
	img = imaging.AdjustContrast(img, e.contrastFor(stats))

	var out image.Image = img
	switch mode {
	case ModeSoft:
		out = imaging.AdjustBrightness(img, e.cfg.SoftBrightness)
	case ModeHighContrast:
		gray := raster.ToGray(img)
		gray = equalizeTiles(gray, e.cfg.TileSize, e.cfg.ClipLimit)
		out = binarizeSoft(gray, raster.GrayStats(gray).MeanLuma)
	case ModeDigitFocus:
		gray := raster.ToGray(img)
		gray = equalizeTiles(gray, e.cfg.TileSize, e.cfg.ClipLimit)
		gray = unsharpGray(gray, e.cfg.UnsharpAmount, e.cfg.NoiseThreshold)
		gray = binarizeSoft(gray, raster.GrayStats(gray).MeanLuma)
		gray = openGray(gray, 3)
		out = gray
	}

	return raster.MustFrame(out, provenanceOf(mode))
}

// upscale chooses a factor inversely related to the captured resolution:
// small frames get enlarged more so strokes land on enough pixels for the
// engine. Digit focus upsamples in two passes (2x then 3x).
func (e *Enhancer) upscale(img image.Image, mode Mode) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if mode == ModeDigitFocus {
		first := imaging.Resize(img, w*2, h*2, imaging.CatmullRom)
		return imaging.Resize(first, w*6, h*6, imaging.CatmullRom)
	}

	longest := w
	if h > longest {
		longest = h
	}
	factor := 1.0
	switch {
	case longest < 600:
		factor = 3.0
	case longest < 1000:
		factor = 2.0
	case longest < 1600:
		factor = 1.5
	}
	if factor == 1.0 {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, int(float64(w)*factor), int(float64(h)*factor), imaging.CatmullRom)
}

// gammaFor maps measured brightness to an imaging gamma parameter. Dark
// frames get their shadows lifted, overexposed frames are pulled down.
// Note imaging's parameter is the reciprocal of the transfer exponent, so
// values above 1 lighten.
func (e *Enhancer) gammaFor(s raster.Stats) float64 {
	switch {
	case s.MeanLuma < 80:
		return 1.5
	case s.MeanLuma < 110:
		return 1.25
	case s.MeanLuma > 190:
		return 0.8
	default:
		return 1.0
	}
}

// contrastFor returns an imaging contrast percentage that grows as the
// measured contrast falls below the target.
func (e *Enhancer) contrastFor(s raster.Stats) float64 {
	if s.Contrast >= e.cfg.TargetContrast {
		return 5
	}
	pct := (e.cfg.TargetContrast - s.Contrast) * 1.2
	if pct > 45 {
		pct = 45
	}
	return pct
}

func provenanceOf(mode Mode) raster.Provenance {
	switch mode {
	case ModeHighContrast:
		return raster.ProvenanceHighContrast
	case ModeSoft:
		return raster.ProvenanceSoft
	case ModeDigitFocus:
		return raster.ProvenanceDigitFocus
	default:
		return raster.ProvenanceStandard
	}
}
