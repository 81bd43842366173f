package script

import (
	"fmt"
	"time"

	"github.com/v0xg/mousereplay/internal/pointer"
)

// OpCode names a single driver call
type OpCode int

const (
	OpMoveTo OpCode = iota
	OpMoveBy
	OpPress
	OpRelease
	OpClick
	OpScroll
	OpPause
)

// Op is one pointer operation, or a pause between two of them
type Op struct {
	Code   OpCode
	Point  pointer.Point
	Button pointer.Button
	Units  int
	Pause  time.Duration
}

func (o Op) String() string {
	switch o.Code {
	case OpMoveTo:
		return "moving to position: " + o.Point.String()
	case OpMoveBy:
		return "moving relatively by: " + o.Point.String()
	case OpPress:
		return fmt.Sprintf("pressing %s button", o.Button)
	case OpRelease:
		return fmt.Sprintf("releasing %s button", o.Button)
	case OpClick:
		return fmt.Sprintf("clicking with %s button", o.Button)
	case OpScroll:
		if o.Units < 0 {
			return fmt.Sprintf("scrolling down by %d units", -o.Units)
		}
		return fmt.Sprintf("scrolling up by %d units", o.Units)
	case OpPause:
		return fmt.Sprintf("pausing %s", o.Pause)
	default:
		return fmt.Sprintf("op(%d)", int(o.Code))
	}
}
