// Package fs implements file system backed staleness tracking and hashing.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"sync"
	"syscall"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessTracker = (*Tracker)(nil)

// Tracker implements ports.StalenessTracker by comparing modification times.
// Nothing is cached: every query observes the file system afresh.
type Tracker struct {
	locks sync.Map // output path -> *sync.Mutex
}

// NewTracker creates a new Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// NeedsUpdate reports whether output must be rebuilt from inputs.
func (t *Tracker) NeedsUpdate(output string, inputs []string) (bool, error) {
	record, err := t.Track(output, inputs)
	if err != nil {
		return false, err
	}
	return record.Stale(), nil
}

// Track observes output and inputs. Queries for the same output are serialized.
func (t *Tracker) Track(output string, inputs []string) (domain.TrackingRecord, error) {
	mu := t.lockFor(output)
	mu.Lock()
	defer mu.Unlock()

	record := domain.TrackingRecord{Output: output}

	info, exists, err := stat(output)
	if err != nil {
		return record, err
	}
	if !exists {
		return record, nil
	}
	record.OutputExists = true
	record.OutputTime = info.ModTime()

	record.Inputs = make([]domain.InputState, 0, len(inputs))
	for _, in := range inputs {
		info, exists, err := stat(in)
		if err != nil {
			return record, err
		}
		state := domain.InputState{Path: in, Exists: exists}
		if exists {
			state.ModTime = info.ModTime()
		}
		record.Inputs = append(record.Inputs, state)
	}

	return record, nil
}

func (t *Tracker) lockFor(path string) *sync.Mutex {
	mu, _ := t.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex) //nolint:forcetypeassert // only *sync.Mutex is stored
}

// IsNotExist reports whether err means the path is absent. A path that
// walks through a regular file (ENOTDIR) cannot exist either.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// stat distinguishes absence from every other failure.
func stat(path string) (os.FileInfo, bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info, true, nil
	}
	if IsNotExist(err) {
		return nil, false, nil
	}
	return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "path", path)
}
