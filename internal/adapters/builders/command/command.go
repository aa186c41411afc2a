// Package command implements a builder that runs an arbitrary tool.
package command

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/workbench/internal/adapters/builders"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Name is the builder type name.
const Name = "command"

// InputsArg is replaced by one argument per input file.
const InputsArg = "${inputs}"

var _ ports.Builder = (*Builder)(nil)

// Options are the data keys the builder accepts.
type Options struct {
	// Command is the argument list. A single string is split on whitespace.
	Command []string          `mapstructure:"command"`
	Outputs []string          `mapstructure:"outputs"`
	Suffix  string            `mapstructure:"suffix"`
	Dir     string            `mapstructure:"dir"`
	Env     map[string]string `mapstructure:"env"`
}

// Builder runs Options.Command once for all stale outputs.
type Builder struct {
	host    *ports.BuilderHost
	opts    Options
	inputs  []string
	outputs []string
}

// Factory constructs command builders.
func Factory(host *ports.BuilderHost) ports.Builder {
	return New(host)
}

// New creates a Builder for one target build.
func New(host *ports.BuilderHost) *Builder {
	return &Builder{host: host}
}

// SetData implements ports.Builder.
func (b *Builder) SetData(data map[string]any) error {
	if err := builders.DecodeData(data, &b.opts); err != nil {
		return err
	}
	if len(b.opts.Command) == 1 {
		b.opts.Command = strings.Fields(b.opts.Command[0])
	}
	if len(b.opts.Command) == 0 {
		return zerr.With(domain.ErrInvalidBuilderData, "missing", "command")
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
	return builders.Produce(ctx, b.host, b.inputs, b.outputs, b.run)
}

func (b *Builder) run(ctx context.Context, stale []string) ([]string, error) {
	cmd := domain.Command{
		Args: b.Args(),
		Dir:  b.host.Expand(b.opts.Dir),
	}
	if len(b.opts.Env) > 0 {
		cmd.Env = make(map[string]string, len(b.opts.Env))
		for k, v := range b.opts.Env {
			cmd.Env[k] = b.host.Expand(v)
		}
	}

	if err := b.host.Executor.Execute(ctx, cmd, b.host.Stdout, b.host.Stderr); err != nil {
		return nil, err
	}
	return builders.Existing(stale), nil
}

// Args returns the expanded argument list.
func (b *Builder) Args() []string {
	props := b.host.Properties.With("inputs", strings.Join(b.inputs, " "))
	if len(b.inputs) > 0 {
		props = props.With("input", b.inputs[0])
	}
	if len(b.outputs) > 0 {
		props = props.With("output", b.outputs[0])
	}

	args := make([]string, 0, len(b.opts.Command)+len(b.inputs))
	for _, arg := range b.opts.Command {
		if arg == InputsArg {
			args = append(args, b.inputs...)
			continue
		}
		args = append(args, props.Expand(arg))
	}
	return args
}
