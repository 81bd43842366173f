package script

import "fmt"

// Warning is a non-fatal problem found in a script
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Lint checks that every drag is eventually released. The button state lives
// in the OS, so an unmatched drag leaves the left button held after the run.
func Lint(steps []Step) []Warning {
	var warnings []Warning
	heldSince := 0

	for _, s := range steps {
		if s.Repeat == 0 {
			continue
		}
		switch s.Action.(type) {
		case Drag:
			if heldSince != 0 {
				warnings = append(warnings, Warning{
					Line:    s.Line,
					Message: fmt.Sprintf("drag while the button from line %d is still held", heldSince),
				})
			}
			heldSince = s.Line
		case Release:
			if heldSince == 0 {
				warnings = append(warnings, Warning{Line: s.Line, Message: "release without a preceding drag"})
			}
			heldSince = 0
		}
	}

	if heldSince != 0 {
		warnings = append(warnings, Warning{
			Line:    heldSince,
			Message: "drag is never released; the left button will stay held",
		})
	}
	return warnings
}
