package ports

import "time"

// Renderer presents build progress.
// It is fed by the telemetry bridge, so the orchestrator never talks to it directly.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlanEmit is called with the targets about to be built, in order.
	OnPlanEmit(targets []string)

	// OnTargetStart is called when a target build begins.
	OnTargetStart(spanID, name string, startTime time.Time)

	// OnTargetLog is called with raw output of external processes run for a target.
	OnTargetLog(spanID string, data []byte)

	// OnTargetComplete is called when a target build ends.
	// status is the build status attribute, err is non-nil for failed targets.
	OnTargetComplete(spanID string, endTime time.Time, status string, err error)

	// Stop flushes buffered output.
	Stop() error
}
