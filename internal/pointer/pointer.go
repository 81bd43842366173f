package pointer

import "fmt"

// Button identifies a mouse button
type Button int

const (
	Left Button = iota
	Right
	Middle
)

func (b Button) String() string {
	switch b {
	case Right:
		return "right"
	case Middle:
		return "middle"
	default:
		return "left"
	}
}

// ParseButton maps a column value to a button. Anything that is not exactly
// "right" or "middle" is the left button.
func ParseButton(s string) Button {
	switch s {
	case "right":
		return Right
	case "middle":
		return Middle
	default:
		return Left
	}
}

// Point is a pair of screen coordinates or offsets
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Driver is the platform capability that moves the cursor and simulates
// button and wheel input.
type Driver interface {
	MoveTo(x, y int) error
	MoveBy(dx, dy int) error
	Press(b Button) error
	Release(b Button) error
	Click(b Button) error
	// ScrollY scrolls vertically; positive is up, negative is down.
	ScrollY(units int) error
}
