// Package locate decides which action file a run reads, creating a sample
// file on first use.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/v0xg/mousereplay/internal/script"
)

// DefaultFileName is created in the working directory when missing
const DefaultFileName = "mouse_actions.csv"

// ErrBootstrap wraps failures to write the default file
var ErrBootstrap = errors.New("cannot create default action file")

// DefaultCandidates are probed in order after the explicit argument
func DefaultCandidates(name string) []string {
	return []string{
		name,
		"./" + name,
		"../" + name,
		"data/" + name,
	}
}

// Resolver finds the action file. Relative paths resolve against Dir, which
// defaults to the process working directory.
type Resolver struct {
	Dir        string
	Name       string
	Candidates []string
	Sample     string
	Logger     *slog.Logger
	// Created is set when Resolve wrote the sample file
	Created bool
}

// NewResolver returns a resolver with the stock file name and search list
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{
		Name:       DefaultFileName,
		Candidates: DefaultCandidates(DefaultFileName),
		Sample:     script.Sample,
		Logger:     logger,
	}
}

// Resolve returns the path to read. arg may be empty.
func (r *Resolver) Resolve(arg string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if arg != "" {
		if r.exists(arg) {
			return arg, nil
		}
		logger.Warn("specified file not found, falling back to default locations", "path", arg)
	}

	if err := r.EnsureDefault(); err != nil {
		return "", err
	}

	for _, candidate := range r.Candidates {
		if r.exists(candidate) {
			return r.join(candidate), nil
		}
	}
	return r.join(r.Name), nil
}

// EnsureDefault writes the sample file if the default name does not exist.
// An existing file is never touched.
func (r *Resolver) EnsureDefault() error {
	path := r.join(r.Name)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrBootstrap, path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrBootstrap, path, err)
	}
	if _, err := f.WriteString(r.Sample); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrBootstrap, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBootstrap, path, err)
	}

	r.Created = true
	if r.Logger != nil {
		r.Logger.Info("created default action file", "path", path)
	}
	return nil
}

func (r *Resolver) exists(p string) bool {
	_, err := os.Stat(r.join(p))
	return err == nil
}

func (r *Resolver) join(p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}
