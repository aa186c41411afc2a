package watcher_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/watcher"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var calls [][]string
	done := make(chan struct{}, 1)

	d := watcher.NewDebouncer(20*time.Millisecond, func(paths []string) {
		mu.Lock()
		calls = append(calls, paths)
		mu.Unlock()
		done <- struct{}{}
	})

	d.Add("src/b.js")
	d.Add("src/a.js")
	d.Add("src/b.js")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"src/a.js", "src/b.js"}, calls[0])
}

func TestDebouncer_FlushIsSynchronous(t *testing.T) {
	var got []string
	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		got = paths
	})

	d.Add("build.json")
	d.Flush()

	assert.Equal(t, []string{"build.json"}, got)
}

func TestDebouncer_FlushWithoutPending(t *testing.T) {
	called := false
	d := watcher.NewDebouncer(time.Hour, func(_ []string) { called = true })

	d.Flush()
	assert.False(t, called)
}
