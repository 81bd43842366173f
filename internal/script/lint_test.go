package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lint(t *testing.T, rows ...string) []Warning {
	t.Helper()
	steps, err := Parse(strings.NewReader(header + strings.Join(rows, "\n") + "\n"))
	require.NoError(t, err)
	return Lint(steps)
}

func TestLintSampleIsClean(t *testing.T) {
	steps, err := Parse(strings.NewReader(Sample))
	require.NoError(t, err)
	assert.Empty(t, Lint(steps))
}

func TestLintUnmatchedDrag(t *testing.T) {
	warnings := lint(t, "move,1,1,,,,", "drag,2,2,,,,", "move,3,3,,,,")
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Line)
	assert.Contains(t, warnings[0].Message, "never released")
}

func TestLintDoubleDrag(t *testing.T) {
	warnings := lint(t, "drag,2,2,,,,", "drag,3,3,,,,", "release,4,4,,,,")
	require.Len(t, warnings, 1)
	assert.Equal(t, "line 3: drag while the button from line 2 is still held", warnings[0].String())
}

func TestLintReleaseWithoutDrag(t *testing.T) {
	warnings := lint(t, "release,4,4,,,,")
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Line)
}

func TestLintIgnoresZeroRepeat(t *testing.T) {
	assert.Empty(t, lint(t, "drag,2,2,,,,0"))
}
