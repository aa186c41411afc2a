package app_test

import (
	"context"
	"iter"
	"sync/atomic"

	"go.trai.ch/workbench/internal/core/ports"
)

// fakeWatcher delivers events pushed by the test until its context ends.
type fakeWatcher struct {
	events  chan ports.WatchEvent
	started chan string
	stopped atomic.Bool
	out     chan ports.WatchEvent
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events:  make(chan ports.WatchEvent),
		started: make(chan string, 1),
		out:     make(chan ports.WatchEvent),
	}
}

func (w *fakeWatcher) factory() (ports.Watcher, error) {
	return w, nil
}

func (w *fakeWatcher) Start(ctx context.Context, root string) error {
	w.started <- root
	go func() {
		defer close(w.out)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-w.events:
				select {
				case w.out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.stopped.Store(true)
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for e := range w.out {
			if !yield(e) {
				return
			}
		}
	}
}

func watchEvent(path string) ports.WatchEvent {
	return ports.WatchEvent{Path: path, Operation: ports.OpWrite}
}
