package ports

import "go.trai.ch/workbench/internal/core/domain"

// Observer receives lifecycle events of a build invocation.
//
//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type Observer interface {
	// OnConfigLoaded is called once a build description has been loaded.
	OnConfigLoaded(cfg *domain.Config)
	// OnBuildCompleted is called after each target finishes, successfully or not.
	OnBuildCompleted(outcome domain.TargetOutcome)
}
