// Package desktop drives the operating system pointer.
package desktop

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/v0xg/mousereplay/internal/pointer"
)

// Driver moves the real cursor. Button state is owned by the OS, so a Press
// without a matching Release stays held after the program exits.
type Driver struct{}

// New returns a driver for the current desktop session
func New() *Driver {
	return &Driver{}
}

func (d *Driver) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (d *Driver) MoveBy(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}

func (d *Driver) Press(b pointer.Button) error {
	if err := robotgo.Toggle(buttonName(b)); err != nil {
		return fmt.Errorf("press %s: %w", b, err)
	}
	return nil
}

func (d *Driver) Release(b pointer.Button) error {
	if err := robotgo.Toggle(buttonName(b), "up"); err != nil {
		return fmt.Errorf("release %s: %w", b, err)
	}
	return nil
}

func (d *Driver) Click(b pointer.Button) error {
	robotgo.Click(buttonName(b), false)
	return nil
}

func (d *Driver) ScrollY(units int) error {
	switch {
	case units > 0:
		robotgo.ScrollDir(units, "up")
	case units < 0:
		robotgo.ScrollDir(-units, "down")
	}
	return nil
}

// buttonName maps to robotgo's button vocabulary
func buttonName(b pointer.Button) string {
	switch b {
	case pointer.Right:
		return "right"
	case pointer.Middle:
		return "center"
	default:
		return "left"
	}
}
