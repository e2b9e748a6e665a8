package enhance

import (
	"image"

	"github.com/anthonynsimon/bild/blur"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

// unsharpGray recovers edge sharpness after denoising: the buffer is blurred
// with a small Gaussian, and each pixel is pushed away from its blurred value
// by amount, but only where the local difference exceeds noiseThreshold so
// sensor noise is not amplified back in.
func unsharpGray(src *image.Gray, amount float64, noiseThreshold int) *image.Gray {
	blurred := raster.ToGray(blur.Gaussian(src, 1.2))

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride : y*src.Stride+w]
		brow := blurred.Pix[y*blurred.Stride : y*blurred.Stride+w]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			diff := int(srow[x]) - int(brow[x])
			if diff < noiseThreshold && diff > -noiseThreshold {
				drow[x] = srow[x]
				continue
			}
			v := int(srow[x]) + int(amount*float64(diff))
			drow[x] = clampByte(v)
		}
	}
	return dst
}

// binarizeSoft separates text from background around a brightness-derived
// threshold. Pixels clearly above go to white, clearly below to black, and
// the band in between is stretched linearly so anti-aliased stroke edges
// survive.
func binarizeSoft(src *image.Gray, meanLuma float64) *image.Gray {
	high := meanLuma + 24
	low := meanLuma - 24
	if high > 255 {
		high = 255
	}
	if low < 0 {
		low = 0
	}
	span := high - low
	if span <= 0 {
		span = 1
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride : y*src.Stride+w]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			v := float64(srow[x])
			switch {
			case v >= high:
				drow[x] = 255
			case v <= low:
				drow[x] = 0
			default:
				drow[x] = clampByte(int((v - low) / span * 255))
			}
		}
	}
	return dst
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
