package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/v0xg/mousereplay/internal/logging"
	"github.com/v0xg/mousereplay/internal/pointer"
	"github.com/v0xg/mousereplay/internal/script"
)

// Options configures playback
type Options struct {
	Out     io.Writer // Progress lines; nil discards them
	Logger  *slog.Logger
	Verbose bool // Print every driver operation, not just every step
	// Sleep blocks for d. Defaults to a timer that honours ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Result summarises a finished run
type Result struct {
	Steps   int // Steps executed, including wait
	Ops     int // Driver calls made
	Skipped int // Unrecognised actions
}

// StepError identifies the step whose driver call failed
type StepError struct {
	Line int
	Op   script.Op
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Play runs steps in file order: delay, then the action's ops Repeat times.
// The first driver error or context cancellation stops the run.
func Play(ctx context.Context, steps []script.Step, d pointer.Driver, opts Options) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	result := &Result{}
	for i, step := range steps {
		fmt.Fprintf(out, "  [%d/%d] %s\n", i+1, len(steps), step)

		if step.Delay != nil {
			if err := sleep(ctx, *step.Delay); err != nil {
				return result, fmt.Errorf("line %d: %w", step.Line, err)
			}
		}

		if u, ok := step.Action.(script.Unknown); ok {
			logger.Warn("unknown action, skipping", "line", step.Line, "action", u.Name)
			result.Skipped++
			continue
		}

		ops := step.Action.Ops()
		for n := 0; n < step.Repeat; n++ {
			for _, op := range ops {
				if opts.Verbose {
					fmt.Fprintf(out, "      %s\n", op)
				}
				if err := apply(ctx, d, op, sleep); err != nil {
					return result, &StepError{Line: step.Line, Op: op, Err: err}
				}
				if op.Code != script.OpPause {
					result.Ops++
				}
			}
		}
		result.Steps++
	}

	return result, nil
}

func apply(ctx context.Context, d pointer.Driver, op script.Op, sleep func(context.Context, time.Duration) error) error {
	switch op.Code {
	case script.OpMoveTo:
		return d.MoveTo(op.Point.X, op.Point.Y)
	case script.OpMoveBy:
		return d.MoveBy(op.Point.X, op.Point.Y)
	case script.OpPress:
		return d.Press(op.Button)
	case script.OpRelease:
		return d.Release(op.Button)
	case script.OpClick:
		return d.Click(op.Button)
	case script.OpScroll:
		return d.ScrollY(op.Units)
	case script.OpPause:
		return sleep(ctx, op.Pause)
	default:
		return fmt.Errorf("unknown op code %d", op.Code)
	}
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
