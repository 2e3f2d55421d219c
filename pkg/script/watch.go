package script

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch runs the script at path once, then again every time the file is
// written or replaced, until ctx is done. Results are handed to f.
func (r *Runner) Watch(ctx context.Context, path string, f func(*Report, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to init file watcher, %w", err)
	}
	defer w.Close()

	// Editors often replace files instead of writing them, so watch the dir.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s, %w", path, err)
	}

	run := func() {
		s, err := Load(path)
		if err != nil {
			f(nil, err)
			return
		}
		f(r.Run(s))
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs || !(e.Has(fsnotify.Write) || e.Has(fsnotify.Create)) {
				continue
			}
			r.logger.Info("script changed", zap.String("file", path))
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}
