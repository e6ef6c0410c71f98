package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

const watchDebounce = 300 * time.Millisecond

// watcher regenerates the outputs whenever the binding file or one of the
// WebIDL files it names changes. Runs happen one at a time on the goroutine
// calling Run.
type watcher struct {
	cfg         *config.Config
	bindingPath string
	fs          *fsnotify.Watcher
	debounce    time.Duration

	// inputs holds the absolute paths of the current input files.
	inputs map[string]bool
	// dirs holds the directories added to fs.
	dirs map[string]bool

	// onRun is called after every run with its result.
	onRun func(error)
}

func newWatcher(cfg *config.Config, bindingPath string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	return &watcher{
		cfg:         cfg,
		bindingPath: bindingPath,
		fs:          fw,
		debounce:    watchDebounce,
		inputs:      make(map[string]bool),
		dirs:        make(map[string]bool),
	}, nil
}

// Run generates once, then again after every burst of input changes, until
// ctx is done. A failed run is logged and does not stop the watcher.
func (w *watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.generate()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debugw("Input changed",
				"file", event.Name,
				"op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", "error", err)
		case <-timer.C:
			w.generate()
		}
	}
}

func (w *watcher) generate() {
	err := generate(w.cfg, w.bindingPath)
	if err != nil {
		logger.Errorw("Generation failed",
			"binding", w.bindingPath,
			"error", err)
	}
	// the binding may name other files now
	if terr := w.track(); terr != nil {
		logger.Warnw("Failed to watch inputs", "error", terr)
	}
	if w.onRun != nil {
		w.onRun(err)
	}
}

// track watches the directory of every input file. Directories are watched
// instead of files so editors that replace a file on save are still seen.
func (w *watcher) track() error {
	files := []string{w.bindingPath}
	if bind, err := binding.Load(w.bindingPath); err == nil {
		for _, name := range bind.Binding.WebIDL {
			files = append(files, idlPath(w.cfg, name))
		}
	}

	var errs error
	inputs := make(map[string]bool, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			errs = errors.CombineErrors(errs, err)
			continue
		}
		inputs[abs] = true
		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "failed to watch %s", dir))
			continue
		}
		w.dirs[dir] = true
		logger.Debugw("Watching directory", "dir", dir)
	}
	w.inputs = inputs
	return errs
}

// relevant reports whether event changed one of the input files.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.inputs[abs]
}
