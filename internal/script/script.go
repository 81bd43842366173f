// Package script reads action files: one CSV row per timed pointer action.
package script

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/v0xg/mousereplay/internal/pointer"
)

// Step is a decoded row ready to play
type Step struct {
	Line   int            // 1-based line in the source file
	Delay  *time.Duration // Pause before the action, nil when the column was empty
	Repeat int            // How many times Ops runs
	Action Action
}

func (s Step) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", s.Action)
	if s.Delay != nil {
		fmt.Fprintf(&b, " after %s", *s.Delay)
	}
	if s.Repeat != 1 {
		fmt.Fprintf(&b, " x%d", s.Repeat)
	}
	return b.String()
}

// LineError attaches the source line to a decoding failure
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ErrHeader is returned when the header row lacks a required column
var ErrHeader = errors.New("invalid header row")

// lineReader feeds gocsv while remembering the physical line each record
// starts on. Blank lines and quoted newlines make that differ from the row
// index.
type lineReader struct {
	r      *csv.Reader
	header []string
	lines  []int
}

func newLineReader(in io.Reader) (*lineReader, error) {
	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrHeader)
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = true
	}
	var missing []string
	for _, name := range Columns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrHeader, strings.Join(missing, ", "))
	}

	return &lineReader{r: r, header: header}, nil
}

func (l *lineReader) Read() ([]string, error) {
	if l.header != nil {
		h := l.header
		l.header = nil
		return h, nil
	}
	rec, err := l.r.Read()
	if err != nil {
		return nil, err
	}
	line, _ := l.r.FieldPos(0)
	l.lines = append(l.lines, line)
	return rec, nil
}

func (l *lineReader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rec, err := l.Read()
		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, rec)
	}
}

// ReadRecords decodes every row of r. The header must name every column in
// Columns; order and extra columns do not matter. The first undecodable row
// stops the read.
func ReadRecords(r io.Reader) ([]Record, error) {
	lr, err := newLineReader(r)
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := gocsv.UnmarshalCSV(lr, &rows); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i, raw := range rows {
		rec, err := raw.decode()
		if err != nil {
			return nil, &LineError{Line: lr.lines[i], Err: err}
		}
		rec.Line = lr.lines[i]
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords encodes records with the standard header
func WriteRecords(w io.Writer, records []Record) error {
	rows := make([]row, len(records))
	for i, rec := range records {
		rows[i] = rec.encode()
	}
	return gocsv.Marshal(&rows, w)
}

// Parse reads r into steps in file order
func Parse(r io.Reader) ([]Step, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(records))
	for i, rec := range records {
		steps[i] = StepFor(rec)
	}
	return steps, nil
}

// StepFor maps a record onto its typed action. A missing repeat count means
// one repetition; for scroll the count is the magnitude instead.
func StepFor(rec Record) Step {
	step := Step{Line: rec.Line, Repeat: 1}
	if rec.DelayMS != nil {
		d := time.Duration(*rec.DelayMS) * time.Millisecond
		step.Delay = &d
	}
	if rec.RepeatCount != nil {
		step.Repeat = int(*rec.RepeatCount)
	}

	var p *pointer.Point
	if rec.X != nil && rec.Y != nil {
		p = &pointer.Point{X: *rec.X, Y: *rec.Y}
	}

	button := pointer.Left
	if rec.Button != nil {
		button = pointer.ParseButton(*rec.Button)
	}

	switch Kind(rec.Action) {
	case KindMove:
		step.Action = Move{To: p}
	case KindMoveRelative:
		step.Action = MoveRelative{By: p}
	case KindClick:
		step.Action = Click{At: p, Button: button}
	case KindDoubleClick:
		step.Action = DoubleClick{At: p, Button: button}
	case KindRightClick:
		step.Action = RightClick{At: p}
	case KindDrag:
		step.Action = Drag{At: p}
	case KindRelease:
		step.Action = Release{At: p}
	case KindScroll:
		direction := 1
		if rec.Modifiers != nil && *rec.Modifiers == "down" {
			direction = -1
		}
		step.Action = Scroll{Amount: direction * step.Repeat}
		step.Repeat = 1
	case KindWait:
		step.Action = Wait{}
	default:
		step.Action = Unknown{Name: rec.Action}
	}
	return step
}
