package ports

import "go.trai.ch/workbench/internal/core/domain"

// ReportEntry is the persisted summary of the last build of a target.
type ReportEntry struct {
	Target      string             `json:"target"`
	Builder     string             `json:"builder"`
	Status      domain.BuildStatus `json:"status"`
	Outputs     []domain.Output    `json:"outputs"`
	Fingerprint string             `json:"fingerprint,omitempty"`
	Error       string             `json:"error,omitempty"`
	FinishedAt  int64              `json:"finished_at"`
}

// ReportStore persists the build report.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get returns the entry for target, or nil if none was recorded.
	Get(target string) (*ReportEntry, error)
	// Put records entry, replacing any previous entry for the same target.
	Put(entry ReportEntry) error
}
