// Package watch reloads data when the files backing it change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/logging"
)

// UntilModifyContext returns a context that is canceled when one of the
// target paths is written, created, removed or renamed. The cause of the
// cancellation names the file and the operation.
//
// If err is not nil, both the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, paths ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, errors.WrapResource("start", "watcher", "", err)
	}

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
			}
		}
	}()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			cancel(err)
			return nil, nil, errors.WrapIO("watch", p, err)
		}
	}
	return cctx, func() { cancel(nil) }, nil
}

// Dir watches a directory for changes to files with the given suffix
// (e.g. ".csv") and calls onChange once per burst of events, after the
// directory has been quiet for debounce. It blocks until ctx is done.
func Dir(ctx context.Context, dir, suffix string, debounce time.Duration, onChange func(context.Context)) error {
	logger := logging.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapResource("start", "watcher", dir, err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(dir); err != nil {
		return errors.WrapIO("watch", dir, err)
	}
	logger.Info().Str("dir", dir).Str("suffix", suffix).Msg("Watching for data changes")

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, suffix) {
				continue
			}
			logger.Debug().Str("file", filepath.Base(event.Name)).Str("op", event.Op.String()).Msg("Data file changed")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("Watcher error")
		case <-timer.C:
			onChange(ctx)
		}
	}
}

func relevant(event fsnotify.Event, suffix string) bool {
	if suffix != "" && !strings.HasSuffix(event.Name, suffix) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
