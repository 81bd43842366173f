package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Cursor is the pointer state at the moment a frame was captured
type Cursor struct {
	X       int
	Y       int
	Pressed bool // A button is held down (drag in progress)
	Click   bool // A click happened at this position
}

var (
	outlineColor = color.RGBA{0, 0, 0, 255}
	fillColor    = color.RGBA{255, 255, 255, 255}
	heldColor    = color.RGBA{255, 214, 10, 255}
	rippleColor  = color.RGBA{66, 133, 244, 100}
)

// ApplyCursor draws the cursor, click ripples and held-button state onto
// copies of frames. frames and cursors must be the same length.
func ApplyCursor(frames []image.Image, cursors []Cursor) ([]image.Image, error) {
	if len(frames) != len(cursors) {
		return nil, fmt.Errorf("have %d frames but %d cursor positions", len(frames), len(cursors))
	}

	result := make([]image.Image, len(frames))
	for i, frame := range frames {
		result[i] = drawCursorOnFrame(frame, cursors[i])
	}
	return result, nil
}

func drawCursorOnFrame(frame image.Image, c Cursor) image.Image {
	bounds := frame.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, frame, bounds.Min, draw.Src)

	if c.Click {
		drawRipple(result, c.X, c.Y, 15)
	}
	if c.Pressed {
		drawRipple(result, c.X, c.Y, 8)
	}
	drawArrow(result, c.X, c.Y, c.Pressed)

	return result
}

// drawArrow draws a simple arrow cursor with its tip at (x, y)
func drawArrow(img *image.RGBA, x, y int, held bool) {
	fill := fillColor
	if held {
		fill = heldColor
	}

	for dy := 0; dy < 18; dy++ {
		for dx := 0; dx < 13; dx++ {
			if insideArrow(dx, dy) {
				setPixelSafe(img, x+dx, y+dy, fill)
			}
		}
	}

	outline := []image.Point{{0, 0}, {0, 16}, {4, 12}, {7, 18}, {10, 17}, {7, 11}, {12, 11}}
	for i := range outline {
		p1 := outline[i]
		p2 := outline[(i+1)%len(outline)]
		drawLine(img, x+p1.X, y+p1.Y, x+p2.X, y+p2.Y, outlineColor)
	}
}

func insideArrow(dx, dy int) bool {
	if dy < 0 || dy > 16 || dx < 0 {
		return false
	}
	if dy <= 11 {
		return dx <= dy*12/16
	}
	return dx <= 4
}

// drawLine is Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		setPixelSafe(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func drawRipple(img *image.RGBA, x, y, radius int) {
	for angle := 0.0; angle < 360; angle++ {
		rad := angle * math.Pi / 180
		px := x + int(float64(radius)*math.Cos(rad))
		py := y + int(float64(radius)*math.Sin(rad))
		setPixelSafe(img, px, py, rippleColor)
		setPixelSafe(img, px+1, py, rippleColor)
		setPixelSafe(img, px, py+1, rippleColor)
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{x, y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
