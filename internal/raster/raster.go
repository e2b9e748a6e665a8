package raster

import (
	"errors"
	"fmt"
	"image"
)

// Provenance identifies which enhancement mode produced a frame.
type Provenance string

const (
	ProvenanceCapture      Provenance = "capture"
	ProvenanceStandard     Provenance = "standard"
	ProvenanceHighContrast Provenance = "high_contrast"
	ProvenanceSoft         Provenance = "soft"
	ProvenanceDigitFocus   Provenance = "digit_focus"
)

// Frame is an immutable raster image tagged with the enhancement mode that
// produced it. Stages never mutate a frame in place; each stage returns a
// fresh Frame over a fresh pixel buffer.
type Frame struct {
	img        image.Image
	provenance Provenance
}

// NewFrame wraps an image in a Frame with the given provenance.
func NewFrame(img image.Image, p Provenance) (Frame, error) {
	if img == nil {
		return Frame{}, errors.New("nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Frame{}, fmt.Errorf("invalid frame dimensions %dx%d", b.Dx(), b.Dy())
	}
	return Frame{img: img, provenance: p}, nil
}

// MustFrame wraps an image and panics on invalid input. Intended for tests
// and for stages that have already validated their buffers.
func MustFrame(img image.Image, p Provenance) Frame {
	f, err := NewFrame(img, p)
	if err != nil {
		panic(err)
	}
	return f
}

// Image returns the underlying image. Callers must treat it as read-only.
func (f Frame) Image() image.Image { return f.img }

// Provenance reports which enhancement mode produced this frame.
func (f Frame) Provenance() Provenance { return f.provenance }

// Width returns the frame width in pixels.
func (f Frame) Width() int {
	if f.img == nil {
		return 0
	}
	return f.img.Bounds().Dx()
}

// Height returns the frame height in pixels.
func (f Frame) Height() int {
	if f.img == nil {
		return 0
	}
	return f.img.Bounds().Dy()
}

// Empty reports whether the frame holds no image.
func (f Frame) Empty() bool { return f.img == nil }
