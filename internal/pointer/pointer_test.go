package pointer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		in   string
		want Button
	}{
		{"", Left},
		{"left", Left},
		{"right", Right},
		{"RIGHT", Left},
		{"Middle", Left},
		{"middle", Middle},
		{" middle ", Left},
		{"thumb", Left},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseButton(tt.in))
		})
	}
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "middle", Middle.String())
}

func TestLogDriverWritesEveryOp(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDriver(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, d.MoveTo(1, 2))
	require.NoError(t, d.MoveBy(-3, 4))
	require.NoError(t, d.Press(Left))
	require.NoError(t, d.Release(Left))
	require.NoError(t, d.Click(Right))
	require.NoError(t, d.ScrollY(-5))

	out := buf.String()
	assert.Contains(t, out, `msg="pointer move" x=1 y=2`)
	assert.Contains(t, out, "dx=-3 dy=4")
	assert.Contains(t, out, `msg="pointer press" button=left`)
	assert.Contains(t, out, `msg="pointer click" button=right`)
	assert.Contains(t, out, "units=-5")
}
