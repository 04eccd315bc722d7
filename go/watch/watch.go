// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch re-runs a callback whenever one of a set of source files
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet after an event before
// its callback runs. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches files through their parent directories so that files
// replaced by rename are still picked up.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period applied per path.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger used for watch events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a Watcher with DefaultDebounce and the default slog logger,
// then applies opts.
func New(opts ...Option) *Watcher {
	w := &Watcher{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls onChange once for every path, then again each time a path is
// written or created, until ctx is cancelled. Callbacks run on the calling
// goroutine, one at a time. Run returns nil on cancellation and the first
// watcher error otherwise.
func (w *Watcher) Run(ctx context.Context, paths []string, onChange func(path string)) error {
	if len(paths) == 0 {
		return errors.New("no paths to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	// Absolute path -> path as given by the caller.
	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	for _, p := range paths {
		onChange(p)
	}

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			p, interesting := watched[filepath.Clean(ev.Name)]
			if !interesting || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("source changed", "file", p, "op", ev.Op.String())
			pending[p] = time.Now().Add(w.debounce)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)

		case now := <-timer.C:
			for _, p := range due(pending, now) {
				delete(pending, p)
				onChange(p)
			}
			if next, ok := earliest(pending); ok {
				timer.Reset(time.Until(next))
			}
		}
	}
}

// due returns the pending paths whose quiet period has elapsed, sorted so
// simultaneous changes are reported in a stable order.
func due(pending map[string]time.Time, now time.Time) []string {
	var ready []string
	for p, deadline := range pending {
		if !deadline.After(now) {
			ready = append(ready, p)
		}
	}
	sort.Strings(ready)
	return ready
}

func earliest(pending map[string]time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, deadline := range pending {
		if !found || deadline.Before(next) {
			next, found = deadline, true
		}
	}
	return next, found
}
