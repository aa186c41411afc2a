package ports

import "go.trai.ch/workbench/internal/core/domain"

// ConfigLoader defines the interface for loading a build description.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and parses the build description at path.
	Load(path string) (*domain.Config, error)
}
