// Package closure implements the closure-compiler builder.
package closure

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/workbench/internal/adapters/builders"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
)

const (
	// Name is the builder type and plugin name.
	Name = "closure-compiler"
	// DefaultSuffix replaces the input extension when a single resource is compiled.
	DefaultSuffix = ".min.js"
	// DefaultBundleSuffix names the output when several resources are compiled together.
	DefaultBundleSuffix = ".js"
	// DefaultCompilationLevel is used when neither data nor properties set one.
	DefaultCompilationLevel = "SIMPLE_OPTIMIZATIONS"

	// ExtraArgsProperty holds default extra compiler arguments.
	ExtraArgsProperty = "closure-compiler-extra-args"
	// CompilationLevelProperty holds the default compilation level.
	CompilationLevelProperty = "closure-compiler-compilation-level"
	// JavaProperty overrides the java executable.
	JavaProperty = "java"
)

var _ ports.Builder = (*Builder)(nil)

// Options are the data keys the builder accepts.
type Options struct {
	Strict           bool     `mapstructure:"strict"`
	ExtraArgs        []string `mapstructure:"extraArgs"`
	CompilationLevel string   `mapstructure:"compilationLevel"`
	Outputs          []string `mapstructure:"outputs"`
	Suffix           string   `mapstructure:"suffix"`
	BundleSuffix     string   `mapstructure:"bundleSuffix"`
}

// Builder compiles its resources into each output with the closure compiler.
type Builder struct {
	host    *ports.BuilderHost
	jars    *JarLocator
	opts    Options
	inputs  []string
	outputs []string
}

// Factory returns a factory sharing jars across every builder it creates.
func Factory(jars *JarLocator) ports.BuilderFactory {
	return func(host *ports.BuilderHost) ports.Builder {
		return New(host, jars)
	}
}

// New creates a Builder for one target build.
func New(host *ports.BuilderHost, jars *JarLocator) *Builder {
	return &Builder{
		host: host,
		jars: jars,
		opts: Options{
			Strict:           true,
			ExtraArgs:        strings.Fields(host.Properties.GetOr(ExtraArgsProperty, "")),
			CompilationLevel: host.Properties.GetOr(CompilationLevelProperty, DefaultCompilationLevel),
			Suffix:           DefaultSuffix,
			BundleSuffix:     DefaultBundleSuffix,
		},
	}
}

// SetData implements ports.Builder.
func (b *Builder) SetData(data map[string]any) error {
	if err := builders.DecodeData(data, &b.opts); err != nil {
		return err
	}
	if len(b.opts.ExtraArgs) == 1 {
		b.opts.ExtraArgs = strings.Fields(b.opts.ExtraArgs[0])
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
		b.outputs = []string{builders.DefaultOutput(b.host, files, b.opts.Suffix, b.opts.BundleSuffix)}
	}
	return nil
}

// Outputs implements ports.Builder.
func (b *Builder) Outputs() []string {
	return slices.Clone(b.outputs)
}

// Build implements ports.Builder.
func (b *Builder) Build(ctx context.Context) (domain.BuildResult, error) {
	return builders.Produce(ctx, b.host, b.inputs, b.outputs, b.compile)
}

func (b *Builder) compile(ctx context.Context, stale []string) ([]string, error) {
	jar, err := b.jars.Locate(ctx, b.host.Properties)
	if err != nil {
		return nil, err
	}
	for _, out := range stale {
		cmd := domain.Command{Args: b.Args(jar, out)}
		if err := b.host.Executor.Execute(ctx, cmd, b.host.Stdout, b.host.Stderr); err != nil {
			return builders.Existing(stale), err
		}
	}
	return builders.Existing(stale), nil
}

// Args returns the compiler command line writing output.
func (b *Builder) Args(jar, output string) []string {
	language := "ECMASCRIPT5"
	if b.opts.Strict {
		language += "_STRICT"
	}
	args := []string{
		b.host.Properties.GetOr(JavaProperty, "java"),
		"-jar", jar,
		"--language_in", language,
		"--compilation_level=" + b.opts.CompilationLevel,
	}
	args = append(args, b.opts.ExtraArgs...)
	args = append(args, "--js_output_file="+output)
	return append(args, b.inputs...)
}
