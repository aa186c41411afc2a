package domain

import "time"

// OutputStatus describes what happened to a single output.
type OutputStatus string

const (
	// OutputBuilt means the output was produced by this build.
	OutputBuilt OutputStatus = "built"
	// OutputSkipped means the output was fresh and left untouched.
	OutputSkipped OutputStatus = "skipped"
	// OutputPlanned means a dry run would have produced the output.
	OutputPlanned OutputStatus = "planned"
)

// Output is one entry of a build result.
type Output struct {
	Path   string       `json:"path"`
	Status OutputStatus `json:"status"`
}

// BuildStatus summarizes a target build.
type BuildStatus string

const (
	// StatusNoInputs means the target declared no resources and nothing ran.
	StatusNoInputs BuildStatus = "no-inputs"
	// StatusUpToDate means every output was fresh.
	StatusUpToDate BuildStatus = "up-to-date"
	// StatusBuilt means every output was produced.
	StatusBuilt BuildStatus = "built"
	// StatusPartial means the production step ran but only some outputs exist.
	StatusPartial BuildStatus = "partial"
	// StatusDryRun means outputs were reported without being produced.
	StatusDryRun BuildStatus = "dry-run"
	// StatusFailed means the target could not be built.
	StatusFailed BuildStatus = "failed"
)

// BuildResult is what a builder reports for one target.
type BuildResult struct {
	Status  BuildStatus `json:"status"`
	Outputs []Output    `json:"outputs"`
}

// Paths returns the output paths of the result in order.
func (r BuildResult) Paths() []string {
	paths := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		paths[i] = o.Path
	}
	return paths
}

// TargetOutcome records the build of one requested target.
type TargetOutcome struct {
	// Requested is the identifier the user asked for.
	Requested string
	// Target is the name of the resolved target.
	Target   string
	Builder  string
	Inputs   []string
	Result   BuildResult
	Err      error
	Started  time.Time
	Finished time.Time
	Dry      bool
}

// Failed reports whether the target build failed.
func (o TargetOutcome) Failed() bool {
	return o.Err != nil
}

// TrackingRecord is the observed state of an output and its inputs at one instant.
type TrackingRecord struct {
	Output       string
	OutputExists bool
	OutputTime   time.Time
	Inputs       []InputState
}

// InputState is the observed state of one input.
type InputState struct {
	Path    string
	Exists  bool
	ModTime time.Time
}

// Stale reports whether the output must be rebuilt.
func (r TrackingRecord) Stale() bool {
	if !r.OutputExists {
		return true
	}
	for _, in := range r.Inputs {
		if !in.Exists || in.ModTime.After(r.OutputTime) {
			return true
		}
	}
	return false
}
