package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func grayImage(width, height int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

func TestNewFrame(t *testing.T) {
	f, err := NewFrame(grayImage(10, 10, 128), ProvenanceCapture)
	require.NoError(t, err)
	assert.Equal(t, 10, f.Width())
	assert.Equal(t, 10, f.Height())
	assert.Equal(t, ProvenanceCapture, f.Provenance())
	assert.False(t, f.Empty())
}

func TestNewFrame_Invalid(t *testing.T) {
	_, err := NewFrame(nil, ProvenanceCapture)
	assert.Error(t, err)

	_, err = NewFrame(image.NewGray(image.Rect(0, 0, 0, 0)), ProvenanceCapture)
	assert.Error(t, err)
}

func TestFrame_ZeroValue(t *testing.T) {
	var f Frame
	assert.True(t, f.Empty())
	assert.Zero(t, f.Width())
	assert.Zero(t, f.Height())
}

func TestComputeStats_Uniform(t *testing.T) {
	s := ComputeStats(grayImage(20, 20, 128))
	assert.InDelta(t, 128, s.MeanLuma, 0.5)
	assert.InDelta(t, 0, s.Contrast, 0.001)
}

func TestComputeStats_TwoTone(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			level := uint8(0)
			if x >= 10 {
				level = 255
			}
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	s := ComputeStats(img)
	assert.InDelta(t, 127.5, s.MeanLuma, 1)
	assert.InDelta(t, 127.5, s.Contrast, 1)
}

func TestGrayStats_MatchesComputeStats(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 16)})
		}
	}
	a := ComputeStats(img)
	b := GrayStats(img)
	assert.InDelta(t, a.MeanLuma, b.MeanLuma, 0.5)
	assert.InDelta(t, a.Contrast, b.Contrast, 0.5)
}

func TestToGray_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 15, 15))
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			src.Set(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	gray := ToGray(src)
	assert.Equal(t, image.Rect(0, 0, 10, 10), gray.Bounds())
	assert.InDelta(t, 100, float64(gray.GrayAt(0, 0).Y), 1)
}

func TestEncodePNG_DecodeRoundTrip(t *testing.T) {
	f, err := NewFrame(grayImage(8, 8, 200), ProvenanceCapture)
	require.NoError(t, err)

	data, err := EncodePNG(f)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, got.Width())
	assert.Equal(t, 8, got.Height())
	assert.Equal(t, ProvenanceCapture, got.Provenance())
}

func TestEncodePNG_EmptyFrame(t *testing.T) {
	_, err := EncodePNG(Frame{})
	assert.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestDecode_BMPAndTIFF(t *testing.T) {
	img := grayImage(8, 8, 200)

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, img))
	got, err := Decode(&bmpBuf)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Width())

	var tiffBuf bytes.Buffer
	require.NoError(t, tiff.Encode(&tiffBuf, img, nil))
	got, err = Decode(&tiffBuf)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Height())
}
