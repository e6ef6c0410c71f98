// Package output writes generated files into the output directory.
//
// Each file is written to a temporary name and renamed into place, so a
// reader never sees a truncated file. The files written by a run are
// remembered and can all be removed again when the run fails.
package output

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// Dir writes files into one output directory.
type Dir struct {
	path    string
	written []string
}

// Open creates the output directory if needed.
func Open(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", path)
	}
	return &Dir{path: path}, nil
}

// Path returns the full path of the named output file.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Written returns the paths written so far, in order.
func (d *Dir) Written() []string {
	return append([]string(nil), d.written...)
}

// WriteFile writes the named file with the contents produced by fn.
func (d *Dir) WriteFile(name string, fn func(w io.Writer) error) error {
	path := d.Path(name)
	out, err := os.Create(path + ".tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer out.Close()
	defer os.Remove(out.Name())

	bw := bufio.NewWriter(out)
	if err := fn(bw); err != nil {
		return errors.Wrapf(err, "failed to generate %s", name)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	if err := os.Rename(out.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to rename %s", name)
	}
	d.written = append(d.written, path)
	logger.Debugw("Wrote output file", "path", path)
	return nil
}

// Remove deletes every file written by this Dir. It keeps going after a
// failure and returns all errors combined.
func (d *Dir) Remove() error {
	var errs error
	for _, path := range d.written {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = errors.CombineErrors(errs, err)
			continue
		}
		logger.Debugw("Removed output file", "path", path)
	}
	d.written = nil
	return errs
}
