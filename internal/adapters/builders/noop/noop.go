// Package noop implements a builder whose production step does nothing.
package noop

import (
	"context"
	"slices"

	"go.trai.ch/workbench/internal/adapters/builders"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
)

const (
	// Name is the builder type name.
	Name = "noop"
	// DefaultSuffix replaces the input extension in derived outputs.
	DefaultSuffix = ".min.js"
)

var _ ports.Builder = (*Builder)(nil)

// Options are the data keys the builder accepts.
type Options struct {
	Outputs []string `mapstructure:"outputs"`
	Suffix  string   `mapstructure:"suffix"`
}

// Builder derives outputs from its resources without transforming anything.
type Builder struct {
	host    *ports.BuilderHost
	opts    Options
	inputs  []string
	outputs []string
	produce builders.Producer
}

// Factory returns a factory for noop builders. A nil produce reports every
// stale output as produced.
func Factory(produce builders.Producer) ports.BuilderFactory {
	return func(host *ports.BuilderHost) ports.Builder {
		return New(host, produce)
	}
}

// New creates a Builder for one target build.
func New(host *ports.BuilderHost, produce builders.Producer) *Builder {
	if produce == nil {
		produce = func(_ context.Context, stale []string) ([]string, error) {
			return stale, nil
		}
	}
	return &Builder{
		host:    host,
		opts:    Options{Suffix: DefaultSuffix},
		produce: produce,
	}
}

// SetData implements ports.Builder.
func (b *Builder) SetData(data map[string]any) error {
	if err := builders.DecodeData(data, &b.opts); err != nil {
		return err
	}
	b.outputs = builders.ExpandAll(b.host, b.opts.Outputs)
	return nil
}

// SetResources implements ports.Builder.
func (b *Builder) SetResources(resources []domain.Resource) error {
	files, err := builders.BindResources(resources)
	if err != nil {
		return err
	}
	b.inputs = files
	if len(b.outputs) == 0 && len(files) > 0 {
		b.outputs = []string{builders.DefaultOutput(b.host, files, b.opts.Suffix, b.opts.Suffix)}
	}
	return nil
}

// Outputs implements ports.Builder.
func (b *Builder) Outputs() []string {
	return slices.Clone(b.outputs)
}

// Build implements ports.Builder.
func (b *Builder) Build(ctx context.Context) (domain.BuildResult, error) {
	return builders.Produce(ctx, b.host, b.inputs, b.outputs, b.produce)
}
