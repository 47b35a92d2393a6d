// Package fsutil writes generated files. Guarded writes ask before replacing
// a file that already exists at the target path; unguarded writes always
// replace.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/encorekit/encore-init/internal/prompt"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Outcome describes what a write did.
type Outcome int

const (
	Created Outcome = iota
	Overwritten
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Overwritten:
		return "overwritten"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

const filePerm fs.FileMode = 0644

// Writer writes files to Fs, asking Prompt before replacing existing ones.
type Writer struct {
	Fs     afero.Fs
	Prompt prompt.Provider
	Log    *zap.Logger
}

// NewWriter returns a Writer. A nil logger is replaced with a no-op one.
func NewWriter(fsys afero.Fs, p prompt.Provider, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{Fs: fsys, Prompt: p, Log: log}
}

// WriteSafe writes content to path. When path already exists the user is
// asked to confirm, defaulting to no; a declined overwrite leaves the file
// untouched and is not an error.
func (w *Writer) WriteSafe(ctx context.Context, path, content string) (Outcome, error) {
	exists, err := w.Exists(path)
	if err != nil {
		return Skipped, err
	}

	if exists {
		ok, err := w.Prompt.Confirm(ctx, fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if err != nil {
			return Skipped, fmt.Errorf("confirming overwrite of %s: %w", path, err)
		}
		if !ok {
			w.Log.Debug("kept existing file", zap.String("path", path))
			return Skipped, nil
		}
	}

	if err := w.write(path, content); err != nil {
		return Skipped, err
	}

	outcome := Created
	if exists {
		outcome = Overwritten
	}
	w.Log.Debug("wrote file", zap.String("path", path), zap.Stringer("outcome", outcome))
	return outcome, nil
}

// WriteFile writes content to path, replacing any existing content without
// asking.
func (w *Writer) WriteFile(path, content string) (Outcome, error) {
	exists, err := w.Exists(path)
	if err != nil {
		return Skipped, err
	}
	if err := w.write(path, content); err != nil {
		return Skipped, err
	}

	outcome := Created
	if exists {
		outcome = Overwritten
	}
	w.Log.Debug("wrote file", zap.String("path", path), zap.Stringer("outcome", outcome))
	return outcome, nil
}

// ReadFile returns the content of path.
func (w *Writer) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(w.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether a regular file or directory exists at path.
func (w *Writer) Exists(path string) (bool, error) {
	_, err := w.Fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

func (w *Writer) write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.Fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(w.Fs, path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
