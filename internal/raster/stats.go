package raster

import (
	"image"
	"image/color"
)

// Luminance weights for the grayscale projection (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Stats holds the luminance statistics used to drive adaptive enhancement.
type Stats struct {
	MeanLuma float64 // average luminance in [0,255]
	Contrast float64 // mean absolute deviation from MeanLuma in [0,255]
}

// ToGray projects an image onto a luminance-weighted grayscale buffer.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			l := lumaR*float64(r>>8) + lumaG*float64(g>>8) + lumaB*float64(bl>>8)
			if l > 255 {
				l = 255
			}
			gray.SetGray(x-b.Min.X, y-b.Min.Y, grayValue(l))
		}
	}
	return gray
}

// ComputeStats measures average luminance and contrast (mean absolute
// deviation from the average) over the luminance projection of img.
func ComputeStats(img image.Image) Stats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Stats{}
	}

	lum := make([]float64, 0, w*h)
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			l := lumaR*float64(r>>8) + lumaG*float64(g>>8) + lumaB*float64(bl>>8)
			lum = append(lum, l)
			sum += l
		}
	}
	mean := sum / float64(len(lum))

	var dev float64
	for _, l := range lum {
		d := l - mean
		if d < 0 {
			d = -d
		}
		dev += d
	}

	return Stats{
		MeanLuma: mean,
		Contrast: dev / float64(len(lum)),
	}
}

// GrayStats measures the same statistics over an already-projected gray buffer.
// Cheaper than ComputeStats when the caller holds a *image.Gray.
func GrayStats(gray *image.Gray) Stats {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Stats{}
	}

	var sum float64
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, p := range row {
			sum += float64(p)
		}
	}
	mean := sum / float64(w*h)

	var dev float64
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, p := range row {
			d := float64(p) - mean
			if d < 0 {
				d = -d
			}
			dev += d
		}
	}

	return Stats{MeanLuma: mean, Contrast: dev / float64(w*h)}
}

func grayValue(l float64) color.Gray {
	if l < 0 {
		l = 0
	}
	if l > 255 {
		l = 255
	}
	return color.Gray{Y: uint8(l + 0.5)}
}
