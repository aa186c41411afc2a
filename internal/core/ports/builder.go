package ports

import (
	"context"
	"io"

	"go.trai.ch/workbench/internal/core/domain"
)

// Builder turns a target's resources into outputs.
// A fresh instance is created for every target build.
//
//go:generate mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// SetData merges the target's builder payload over the builder defaults.
	SetData(data map[string]any) error
	// SetResources records the target's input resources. Every resource must exist.
	SetResources(resources []domain.Resource) error
	// Outputs returns the declared or derived output paths.
	Outputs() []string
	// Build produces stale outputs and reports what happened to each.
	Build(ctx context.Context) (domain.BuildResult, error)
}

// BuilderFactory constructs a builder bound to one target build.
type BuilderFactory func(host *BuilderHost) Builder

// BuilderHost is everything a builder may use while building one target.
type BuilderHost struct {
	Config *domain.Config
	// Properties is the config's property store extended with ${target}.
	Properties *domain.Properties
	// Target is the name of the resolved target.
	Target string
	// Requested is the identifier the target was requested by.
	Requested string
	Tracker   StalenessTracker
	Executor  Executor
	Logger    Logger
	Stdout    io.Writer
	Stderr    io.Writer
}

// Expand expands s against the host's properties.
func (h *BuilderHost) Expand(s string) string {
	return h.Properties.Expand(s)
}

// Dry reports whether the invocation is a dry run.
func (h *BuilderHost) Dry() bool {
	return h.Config != nil && h.Config.Options.Dry
}
