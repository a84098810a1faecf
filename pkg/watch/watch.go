// Package watch re-runs a callback whenever a file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

const DefaultDebounce = 100 * time.Millisecond

type Option func(*options)

type options struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WithDebounce sets how long the file must stay quiet before fn runs.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// File calls fn after every burst of writes to path, until ctx is done.
// The parent directory is watched so that editors which replace the file
// by rename are still seen. Errors from fn are logged, not returned.
func File(ctx context.Context, path string, fn func(context.Context) error, opts ...Option) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	o := &options{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	o.logger.Debug("watching", "path", abs)

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(o.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(o.debounce)
			}
		case <-fire:
			o.logger.Debug("changed", "path", abs)
			if err := fn(ctx); err != nil {
				o.logger.Error("rebuild failed", "path", abs, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			o.logger.Warn("watch error", "error", err)
		}
	}
}
