package enhance

import "image"

// openGray performs a morphological opening (erosion followed by dilation)
// with a square kernel. Opening removes speckle noise smaller than the
// kernel while preserving stroke continuity.
func openGray(src *image.Gray, kernelSize int) *image.Gray {
	if kernelSize <= 1 {
		return src
	}
	return dilateGray(erodeGray(src, kernelSize), kernelSize)
}

// erodeGray shrinks bright regions: each pixel takes the minimum over the
// kernel neighborhood.
func erodeGray(src *image.Gray, kernelSize int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	half := kernelSize / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			minVal := uint8(255)
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					nx, ny := x+kx, y+ky
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if v := src.Pix[ny*src.Stride+nx]; v < minVal {
						minVal = v
					}
				}
			}
			dst.Pix[y*dst.Stride+x] = minVal
		}
	}
	return dst
}

// dilateGray expands bright regions: each pixel takes the maximum over the
// kernel neighborhood.
func dilateGray(src *image.Gray, kernelSize int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	half := kernelSize / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var maxVal uint8
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					nx, ny := x+kx, y+ky
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if v := src.Pix[ny*src.Stride+nx]; v > maxVal {
						maxVal = v
					}
				}
			}
			dst.Pix[y*dst.Stride+x] = maxVal
		}
	}
	return dst
}
