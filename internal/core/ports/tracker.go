package ports

import "go.trai.ch/workbench/internal/core/domain"

// StalenessTracker decides whether an output must be rebuilt from its inputs.
//
//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type StalenessTracker interface {
	// NeedsUpdate reports whether output is missing or older than any of inputs.
	NeedsUpdate(output string, inputs []string) (bool, error)
	// Track observes output and inputs and returns the record the decision is based on.
	Track(output string, inputs []string) (domain.TrackingRecord, error)
}
