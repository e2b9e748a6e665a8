package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// ReceiptFrame renders receipt-style lines onto a white frame, left-aligned
// the way thermal printers lay out text.
func ReceiptFrame(lines []string, width int) raster.Frame {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 4
	height := lineHeight*(len(lines)+2) + 20
	if height < 60 {
		height = 60
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(10, 20+(i+1)*lineHeight)
		drawer.DrawString(line)
	}

	return raster.MustFrame(img, raster.ProvenanceCapture)
}

// TallReceiptFrame renders lines onto a frame of exactly the given height,
// for exercising the segmentation path.
func TallReceiptFrame(lines []string, width, height int) raster.Frame {
	base := ReceiptFrame(lines, width)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(img, base.Image().Bounds(), base.Image(), image.Point{}, draw.Src)

	return raster.MustFrame(img, raster.ProvenanceCapture)
}

// LabelFrame renders a short label text, small like a printed date stamp.
func LabelFrame(text string) raster.Frame {
	face := basicfont.Face7x13

	width := font.MeasureString(face, text).Ceil() + 20
	if width < 80 {
		width = 80
	}
	height := 40

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}
	drawer.Dot = fixed.P(10, 25)
	drawer.DrawString(text)

	return raster.MustFrame(img, raster.ProvenanceCapture)
}

// GrayGradientFrame builds a frame with a horizontal luminance ramp, useful
// for exercising the enhancement transforms.
func GrayGradientFrame(width, height int) raster.Frame {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / max(width-1, 1))})
		}
	}
	return raster.MustFrame(img, raster.ProvenanceCapture)
}

// UniformFrame builds a frame filled with one gray level.
func UniformFrame(width, height int, level uint8) raster.Frame {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return raster.MustFrame(img, raster.ProvenanceCapture)
}

// SaveFrame writes a frame as PNG, creating parent directories.
func SaveFrame(t *testing.T, frame raster.Frame, path string) {
	t.Helper()

	require.NoError(t, EnsureDir(filepath.Dir(path)))

	file, err := os.Create(path) //nolint:gosec // test file creation with controlled path
	require.NoError(t, err, "Failed to create file %s", path)
	defer func() {
		require.NoError(t, file.Close())
	}()

	require.NoError(t, png.Encode(file, frame.Image()))
}
