package script

import (
	"fmt"
	"time"

	"github.com/v0xg/mousereplay/internal/pointer"
)

// Kind is the action tag from the first column
type Kind string

const (
	KindMove         Kind = "move"
	KindMoveRelative Kind = "move_relative"
	KindClick        Kind = "click"
	KindDoubleClick  Kind = "double_click"
	KindRightClick   Kind = "right_click"
	KindDrag         Kind = "drag"
	KindRelease      Kind = "release"
	KindScroll       Kind = "scroll"
	KindWait         Kind = "wait"
	KindUnknown      Kind = "unknown"
)

// DoubleClickPause separates the two clicks of a double click
const DoubleClickPause = 10 * time.Millisecond

// Action is one of the concrete action types below. Each carries only the
// fields its kind uses.
type Action interface {
	Kind() Kind
	// Ops expands the action into driver operations for a single repetition.
	Ops() []Op
	String() string
}

type Move struct{ To *pointer.Point }

type MoveRelative struct{ By *pointer.Point }

type Click struct {
	At     *pointer.Point
	Button pointer.Button
}

type DoubleClick struct {
	At     *pointer.Point
	Button pointer.Button
}

type RightClick struct{ At *pointer.Point }

// Drag presses the left button and leaves it held. A later Release lets go.
type Drag struct{ At *pointer.Point }

type Release struct{ At *pointer.Point }

// Scroll carries a signed magnitude; positive is up.
type Scroll struct{ Amount int }

type Wait struct{}

// Unknown is an unrecognised action tag. It expands to nothing.
type Unknown struct{ Name string }

func (Move) Kind() Kind         { return KindMove }
func (MoveRelative) Kind() Kind { return KindMoveRelative }
func (Click) Kind() Kind        { return KindClick }
func (DoubleClick) Kind() Kind  { return KindDoubleClick }
func (RightClick) Kind() Kind   { return KindRightClick }
func (Drag) Kind() Kind         { return KindDrag }
func (Release) Kind() Kind      { return KindRelease }
func (Scroll) Kind() Kind       { return KindScroll }
func (Wait) Kind() Kind         { return KindWait }
func (Unknown) Kind() Kind      { return KindUnknown }

func (a Move) Ops() []Op {
	if a.To == nil {
		return nil
	}
	return []Op{moveTo(*a.To)}
}

func (a MoveRelative) Ops() []Op {
	if a.By == nil {
		return nil
	}
	return []Op{{Code: OpMoveBy, Point: *a.By}}
}

func (a Click) Ops() []Op {
	return append(moveFirst(a.At), Op{Code: OpClick, Button: a.Button})
}

func (a DoubleClick) Ops() []Op {
	return append(moveFirst(a.At),
		Op{Code: OpClick, Button: a.Button},
		Op{Code: OpPause, Pause: DoubleClickPause},
		Op{Code: OpClick, Button: a.Button},
	)
}

func (a RightClick) Ops() []Op {
	return append(moveFirst(a.At), Op{Code: OpClick, Button: pointer.Right})
}

func (a Drag) Ops() []Op {
	return append(moveFirst(a.At), Op{Code: OpPress, Button: pointer.Left})
}

func (a Release) Ops() []Op {
	return append(moveFirst(a.At), Op{Code: OpRelease, Button: pointer.Left})
}

func (a Scroll) Ops() []Op {
	return []Op{{Code: OpScroll, Units: a.Amount}}
}

func (Wait) Ops() []Op    { return nil }
func (Unknown) Ops() []Op { return nil }

func (a Move) String() string         { return "move" + at(a.To, " to ") }
func (a MoveRelative) String() string { return "move_relative" + at(a.By, " by ") }
func (a Click) String() string        { return fmt.Sprintf("click %s", a.Button) + at(a.At, " at ") }
func (a DoubleClick) String() string {
	return fmt.Sprintf("double_click %s", a.Button) + at(a.At, " at ")
}
func (a RightClick) String() string { return "right_click" + at(a.At, " at ") }
func (a Drag) String() string       { return "drag" + at(a.At, " from ") }
func (a Release) String() string    { return "release" + at(a.At, " at ") }
func (Wait) String() string         { return "wait" }
func (a Unknown) String() string    { return fmt.Sprintf("unknown %q", a.Name) }

func (a Scroll) String() string {
	if a.Amount < 0 {
		return fmt.Sprintf("scroll down by %d", -a.Amount)
	}
	return fmt.Sprintf("scroll up by %d", a.Amount)
}

func at(p *pointer.Point, prefix string) string {
	if p == nil {
		return ""
	}
	return prefix + p.String()
}

func moveTo(p pointer.Point) Op {
	return Op{Code: OpMoveTo, Point: p}
}

func moveFirst(p *pointer.Point) []Op {
	if p == nil {
		return nil
	}
	return []Op{moveTo(*p)}
}
