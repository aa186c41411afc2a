package cas

import (
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Observer = (*Reporter)(nil)

// Reporter records every completed target in a ReportStore.
// Dry runs leave the report untouched.
type Reporter struct {
	store  ports.ReportStore
	hasher ports.Hasher
	logger ports.Logger
}

// NewReporter creates a new Reporter.
func NewReporter(store ports.ReportStore, hasher ports.Hasher, logger ports.Logger) *Reporter {
	return &Reporter{store: store, hasher: hasher, logger: logger}
}

// OnConfigLoaded does nothing.
func (r *Reporter) OnConfigLoaded(_ *domain.Config) {}

// OnBuildCompleted stores the outcome. Failures to record are logged, never fatal.
func (r *Reporter) OnBuildCompleted(outcome domain.TargetOutcome) {
	if outcome.Dry {
		return
	}

	entry := ports.ReportEntry{
		Target:     outcome.Target,
		Builder:    outcome.Builder,
		Status:     outcome.Result.Status,
		Outputs:    outcome.Result.Outputs,
		FinishedAt: outcome.Finished.UnixNano(),
	}
	if outcome.Err != nil {
		entry.Status = domain.StatusFailed
		entry.Error = outcome.Err.Error()
	}

	if len(outcome.Inputs) > 0 {
		fingerprint, err := r.hasher.Fingerprint(outcome.Inputs)
		if err != nil {
			r.logger.Error(zerr.With(err, "target", outcome.Target))
		} else {
			entry.Fingerprint = fingerprint
		}
	}

	if err := r.store.Put(entry); err != nil {
		r.logger.Error(err)
	}
}
