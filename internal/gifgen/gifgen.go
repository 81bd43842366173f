package gifgen

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"sort"

	"github.com/nfnt/resize"
)

// ErrNoFrames is returned when there is nothing to encode
var ErrNoFrames = errors.New("no frames to encode")

// Options configures GIF generation
type Options struct {
	FPS      int
	MaxWidth uint
	Hold     int // Extra frames to repeat the last image for, so the loop pauses
}

// Generate encodes frames to a looping GIF at outputPath and returns the file size
func Generate(frames []image.Image, outputPath string, opts Options) (int64, error) {
	if len(frames) == 0 {
		return 0, ErrNoFrames
	}
	if opts.FPS <= 0 {
		opts.FPS = 2
	}

	// GIF delays are in 100ths of a second
	delay := 100 / opts.FPS
	if delay < 2 {
		delay = 2
	}

	bounds := frames[0].Bounds()
	outputWidth := opts.MaxWidth
	if outputWidth == 0 {
		outputWidth = 800
	}
	if uint(bounds.Dx()) < outputWidth {
		outputWidth = uint(bounds.Dx())
	}
	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	outputHeight := uint(float64(outputWidth) * aspectRatio)

	palette := generatePalette(frames[0])

	g := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		resized := resize.Resize(outputWidth, outputHeight, frame, resize.Lanczos3)
		paletted := image.NewPaletted(resized.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, resized.Bounds(), resized, image.Point{})

		g.Image = append(g.Image, paletted)
		g.Delay = append(g.Delay, delay)
	}
	if opts.Hold > 0 {
		g.Delay[len(g.Delay)-1] += delay * opts.Hold
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, g); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// generatePalette keeps the 255 most frequent colours of a sampled image plus
// a transparent entry, padding with greys.
func generatePalette(img image.Image) color.Palette {
	bounds := img.Bounds()
	counts := make(map[color.RGBA]int)

	const step = 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			counts[color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}]++
		}
	}

	colors := make([]color.RGBA, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if counts[colors[i]] != counts[colors[j]] {
			return counts[colors[i]] > counts[colors[j]]
		}
		return rgbaKey(colors[i]) < rgbaKey(colors[j])
	})

	palette := make(color.Palette, 0, 256)
	palette = append(palette, color.RGBA{0, 0, 0, 0})
	for i := 0; i < len(colors) && len(palette) < 256; i++ {
		palette = append(palette, colors[i])
	}
	for len(palette) < 256 {
		gray := uint8(len(palette))
		palette = append(palette, color.RGBA{gray, gray, gray, 255})
	}
	return palette
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
