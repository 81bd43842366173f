package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Columns is the header every action file starts with
var Columns = []string{"action", "x_position", "y_position", "delay_ms", "button", "modifiers", "repeat_count"}

// row is the wire shape of one CSV line. Every column is kept as text so
// that decoding errors can name the column and the offending value.
type row struct {
	Action      string `csv:"action"`
	X           string `csv:"x_position"`
	Y           string `csv:"y_position"`
	DelayMS     string `csv:"delay_ms"`
	Button      string `csv:"button"`
	Modifiers   string `csv:"modifiers"`
	RepeatCount string `csv:"repeat_count"`
}

// Record is one decoded row. Nil fields were empty in the file.
type Record struct {
	Line        int // Physical line the row starts on; not encoded
	Action      string
	X           *int
	Y           *int
	DelayMS     *uint64
	Button      *string
	Modifiers   *string
	RepeatCount *uint32
}

// FieldError reports a column value that does not decode into its type
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: cannot decode %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (r row) decode() (Record, error) {
	rec := Record{
		Action:    strings.TrimSpace(r.Action),
		Button:    optString(r.Button),
		Modifiers: optString(r.Modifiers),
	}

	var err error
	if rec.X, err = optInt("x_position", r.X); err != nil {
		return Record{}, err
	}
	if rec.Y, err = optInt("y_position", r.Y); err != nil {
		return Record{}, err
	}

	if s := strings.TrimSpace(r.DelayMS); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Record{}, &FieldError{Column: "delay_ms", Value: r.DelayMS, Err: err}
		}
		rec.DelayMS = &v
	}

	if s := strings.TrimSpace(r.RepeatCount); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Record{}, &FieldError{Column: "repeat_count", Value: r.RepeatCount, Err: err}
		}
		n := uint32(v)
		rec.RepeatCount = &n
	}

	return rec, nil
}

func (rec Record) encode() row {
	r := row{Action: rec.Action}
	if rec.X != nil {
		r.X = strconv.Itoa(*rec.X)
	}
	if rec.Y != nil {
		r.Y = strconv.Itoa(*rec.Y)
	}
	if rec.DelayMS != nil {
		r.DelayMS = strconv.FormatUint(*rec.DelayMS, 10)
	}
	if rec.Button != nil {
		r.Button = *rec.Button
	}
	if rec.Modifiers != nil {
		r.Modifiers = *rec.Modifiers
	}
	if rec.RepeatCount != nil {
		r.RepeatCount = strconv.FormatUint(uint64(*rec.RepeatCount), 10)
	}
	return r
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optInt(column, s string) (*int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return nil, &FieldError{Column: column, Value: s, Err: err}
	}
	n := int(v)
	return &n, nil
}
