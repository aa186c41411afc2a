package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.trai.ch/workbench/internal/adapters/watcher"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch builds the targets once, then rebuilds them whenever a file below
// the working directory changes. It returns when ctx ends.
// Target failures are reported and watching continues; configuration
// errors on the first build stop the session.
func (a *App) Watch(ctx context.Context, ids []string, opts Options) error {
	if len(ids) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	root, err := watchRoot()
	if err != nil {
		return err
	}

	produced := newPathSet()
	outcomes, err := a.build(ctx, ids, opts)
	if isFatal(err) {
		return err
	}
	produced.replace(outcomes)

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = w.Stop() }()

	g, ctx := errgroup.WithContext(ctx)
	rebuild := make(chan []string, 1)

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
			// A rebuild is already pending and will pick these changes up.
		}
	})

	if err := w.Start(ctx, root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", root)
	}

	g.Go(func() error {
		for event := range w.Events() {
			if produced.has(event.Path) {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-rebuild:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
				outcomes, err := a.build(ctx, ids, opts)
				produced.replace(outcomes)
				if isFatal(err) {
					a.logger.Error(err)
				}
			}
		}
	})

	return g.Wait()
}

// pathSet holds the absolute output paths of the latest build.
type pathSet struct {
	mu    sync.RWMutex
	paths map[string]bool
}

func newPathSet() *pathSet {
	return &pathSet{paths: make(map[string]bool)}
}

func (s *pathSet) replace(outcomes []domain.TargetOutcome) {
	paths := make(map[string]bool)
	for _, o := range outcomes {
		for _, p := range o.Result.Paths() {
			if abs, err := filepath.Abs(p); err == nil {
				paths[abs] = true
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = paths
}

func (s *pathSet) has(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paths[abs]
}
