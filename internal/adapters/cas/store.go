// Package cas persists the build report.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReportStore = (*Store)(nil)

// report is the on-disk layout of the report file.
type report struct {
	Targets map[string]ports.ReportEntry `json:"targets"`
}

// Store implements ports.ReportStore with a single JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store for the report below root.
func NewStore(root string) *Store {
	return &Store{path: domain.DefaultReportPath(root)}
}

// Path returns the report file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry for target, or nil when none was recorded.
func (s *Store) Get(target string) (*ports.ReportEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	entry, ok := r.Targets[target]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put records entry, replacing any previous entry for its target.
func (s *Store) Put(entry ports.ReportEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.readLocked()
	if err != nil {
		return err
	}
	r.Targets[entry.Target] = entry

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrReportWriteFailed.Error())
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", s.path)
	}

	// Write to a sibling and rename so readers never see a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// readLocked must be called with s.mu held. A missing file is an empty report.
func (s *Store) readLocked() (*report, error) {
	r := &report{Targets: make(map[string]ports.ReportEntry)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrReportReadFailed.Error()), "path", s.path)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrReportReadFailed.Error()), "path", s.path)
	}
	if r.Targets == nil {
		r.Targets = make(map[string]ports.ReportEntry)
	}
	return r, nil
}
