package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Load reads an image file from disk and wraps it as a capture frame.
func Load(path string) (Frame, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Frame{}, fmt.Errorf("load image %s: %w", path, err)
	}
	return NewFrame(img, ProvenanceCapture)
}

// Decode reads an encoded image (PNG, JPEG, BMP or TIFF) from r and wraps
// it as a capture frame. Used by the HTTP upload handlers.
func Decode(r io.Reader) (Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Frame{}, fmt.Errorf("decode image: %w", err)
	}
	return NewFrame(img, ProvenanceCapture)
}

// EncodePNG serializes a frame as PNG. The OCR engine adapter feeds the
// engine encoded bytes rather than raw buffers.
func EncodePNG(f Frame) ([]byte, error) {
	if f.Empty() {
		return nil, fmt.Errorf("encode: empty frame")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, f.Image(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
