package locate

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/v0xg/mousereplay/internal/script"
)

func newTestResolver(t *testing.T, dir string) (*Resolver, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r := NewResolver(slog.New(slog.NewTextHandler(&buf, nil)))
	r.Dir = dir
	return r, &buf
}

func TestResolveExplicitArgument(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.csv")
	require.NoError(t, os.WriteFile(custom, []byte("x"), 0o644))

	r, _ := newTestResolver(t, dir)
	path, err := r.Resolve(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, path)
	assert.False(t, r.Created)
	assert.NoFileExists(t, filepath.Join(dir, DefaultFileName))
}

func TestResolveMissingArgumentFallsBack(t *testing.T) {
	dir := t.TempDir()
	r, logs := newTestResolver(t, dir)

	path, err := r.Resolve(filepath.Join(dir, "nope.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), path)
	assert.True(t, r.Created)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "nope.csv")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, script.Sample, string(data))
}

func TestResolveDoesNotOverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, DefaultFileName)
	const content = "action,x_position,y_position,delay_ms,button,modifiers,repeat_count\nwait,,,1,,,\n"
	require.NoError(t, os.WriteFile(existing, []byte(content), 0o644))

	r, _ := newTestResolver(t, dir)
	for i := 0; i < 2; i++ {
		path, err := r.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, existing, path)
	}
	assert.False(t, r.Created)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestResolveCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "other.csv"), []byte("x"), 0o644))

	r, _ := newTestResolver(t, dir)
	r.Name = "missing.csv"
	r.Candidates = []string{"nowhere.csv", "data/other.csv", "missing.csv"}

	path, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "other.csv"), path)
	assert.True(t, r.Created, "default file is still bootstrapped")
}

func TestResolveBootstrapFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	r, _ := newTestResolver(t, dir)

	_, err := r.Resolve("")
	require.ErrorIs(t, err, ErrBootstrap)
}

func TestDefaultCandidates(t *testing.T) {
	assert.Equal(t, []string{
		"mouse_actions.csv",
		"./mouse_actions.csv",
		"../mouse_actions.csv",
		"data/mouse_actions.csv",
	}, DefaultCandidates(DefaultFileName))
}
