package enhance

import "image"

// equalizeTiles performs tile-local adaptive histogram equalization on a
// grayscale buffer. The image is processed in fixed-size tiles; each tile's
// histogram is clipped at clipLimit times the uniform bin height, the excess
// redistributed evenly, and the tile's pixels remapped through the resulting
// cumulative distribution.
func equalizeTiles(src *image.Gray, tileSize int, clipLimit float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for ty := 0; ty < h; ty += tileSize {
		for tx := 0; tx < w; tx += tileSize {
			tw := tileSize
			if tx+tw > w {
				tw = w - tx
			}
			th := tileSize
			if ty+th > h {
				th = h - ty
			}
			equalizeTile(src, dst, tx, ty, tw, th, clipLimit)
		}
	}
	return dst
}

func equalizeTile(src, dst *image.Gray, tx, ty, tw, th int, clipLimit float64) {
	n := tw * th
	if n == 0 {
		return
	}

	var hist [256]int
	for y := ty; y < ty+th; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+src.Rect.Dx()]
		for x := tx; x < tx+tw; x++ {
			hist[row[x]]++
		}
	}

	// Clip bins and redistribute the excess uniformly. This bounds the
	// slope of the mapping so flat regions do not explode into noise.
	limit := int(clipLimit * float64(n) / 256.0)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	share := excess / 256
	for i := range hist {
		hist[i] += share
	}

	var lut [256]uint8
	cum := 0
	for i := range hist {
		cum += hist[i]
		v := (cum*255 + n/2) / n
		if v > 255 {
			v = 255
		}
		lut[i] = uint8(v)
	}

	for y := ty; y < ty+th; y++ {
		srow := src.Pix[y*src.Stride : y*src.Stride+src.Rect.Dx()]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Rect.Dx()]
		for x := tx; x < tx+tw; x++ {
			drow[x] = lut[srow[x]]
		}
	}
}
