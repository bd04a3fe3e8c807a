package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, maxSide int
		ew, eh        int
	}{
		{100, 50, 1280, 100, 50},
		{1280, 1280, 1280, 1280, 1280},
		{2560, 1280, 1280, 1280, 640},
		{1280, 2560, 1280, 640, 1280},
		{4000, 3000, 1000, 1000, 750},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.maxSide)
		assert.Equal(t, tt.ew, w, "%dx%d max %d", tt.w, tt.h, tt.maxSide)
		assert.Equal(t, tt.eh, h, "%dx%d max %d", tt.w, tt.h, tt.maxSide)
	}
}

func writeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	path := filepath.Join(t.TempDir(), "img.jpg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestResizeJPEGDownscales(t *testing.T) {
	path := writeTestJPEG(t, 200, 100)

	data, err := ResizeJPEG(path, 50)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 50, decoded.Bounds().Dx())
	assert.Equal(t, 25, decoded.Bounds().Dy())
}

func TestResizeJPEGKeepsSmallImages(t *testing.T) {
	path := writeTestJPEG(t, 60, 40)

	data, err := ResizeJPEG(path, 1280)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 60, decoded.Bounds().Dx())
	assert.Equal(t, 40, decoded.Bounds().Dy())
}

func TestResizeJPEGMissingFile(t *testing.T) {
	_, err := ResizeJPEG(filepath.Join(t.TempDir(), "absent.jpg"), 100)
	assert.Error(t, err)
}

func TestPrepareAllSkipsBroken(t *testing.T) {
	good := writeTestJPEG(t, 30, 30)
	broken := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))

	out := PrepareAll(context.Background(), []string{good, broken, "missing.jpg"}, 100)
	assert.Len(t, out, 1)
}
