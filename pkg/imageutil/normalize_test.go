package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestNormalizeToJPG_PNGBecomesJPEG(t *testing.T) {
	out, err := NormalizeToJPG(encodePNG(t, 100, 60), 1024, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 60, h)
}

func TestNormalizeToJPG_ResizesWideImages(t *testing.T) {
	out, err := NormalizeToJPG(encodePNG(t, 2000, 1000), 1024, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 1024, w)
	// Aspect ratio preserved: 1000 * (1024/2000) = 512.
	assert.Equal(t, 512, h)
}

func TestNormalizeToJPG_SmallImagesKeptAsIs(t *testing.T) {
	out, err := NormalizeToJPG(encodeJPG(t, 300, 200), 1024, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
}

func TestNormalizeToJPG_RejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPG([]byte("definitely not an image"), 1024, 85)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeToJPG_RejectsEmptyInput(t *testing.T) {
	_, err := NormalizeToJPG(nil, 1024, 85)
	assert.Error(t, err)
}

func TestApplyOrientation_Rotate90SwapsDims(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	rotated := applyOrientation(img, 6)
	b := rotated.Bounds()
	assert.Equal(t, 2, b.Dx())
	assert.Equal(t, 4, b.Dy())
}

func TestApplyOrientation_FlipHMirrorsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	flipped := applyOrientation(img, 2)
	r, _, _, _ := flipped.At(1, 0).RGBA()
	_, _, b, _ := flipped.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), b)
}
