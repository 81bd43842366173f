package gifgen

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGenerateNoFrames(t *testing.T) {
	_, err := Generate(nil, filepath.Join(t.TempDir(), "out.gif"), Options{})
	require.ErrorIs(t, err, ErrNoFrames)
}

func TestGenerateWritesGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	frames := []image.Image{
		solid(40, 20, color.RGBA{255, 0, 0, 255}),
		solid(40, 20, color.RGBA{0, 0, 255, 255}),
	}

	size, err := Generate(frames, out, Options{FPS: 4, MaxWidth: 800, Hold: 3})
	require.NoError(t, err)
	assert.Positive(t, size)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, g.Image, 2)
	assert.Equal(t, 40, g.Image[0].Bounds().Dx(), "never upscales")
	assert.Equal(t, []int{25, 100}, g.Delay)
}

func TestGeneratePaletteSize(t *testing.T) {
	p := generatePalette(solid(8, 8, color.RGBA{1, 2, 3, 255}))
	require.Len(t, p, 256)
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, p[0])
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, p[1])
}
