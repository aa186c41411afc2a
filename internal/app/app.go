// Package app implements the application layer for workbench.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/workbench/internal/adapters/detector"
	"go.trai.ch/workbench/internal/adapters/linear"
	"go.trai.ch/workbench/internal/adapters/telemetry"
	"go.trai.ch/workbench/internal/adapters/tui"
	"go.trai.ch/workbench/internal/adapters/watcher"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/events"
	"go.trai.ch/workbench/internal/engine/orchestrator"
	"go.trai.ch/workbench/internal/engine/registry"
	"go.trai.ch/zerr"
)

const (
	// ActionListTargets prints every target name.
	ActionListTargets = "listtargets"
	// ActionListProperties prints every property with its expanded value.
	ActionListProperties = "listproperties"
)

// WatcherFactory creates the file watcher used by Watch.
type WatcherFactory func() (ports.Watcher, error)

// App represents the main application logic.
type App struct {
	loader     ports.ConfigLoader
	registry   *registry.Registry
	tracker    ports.StalenessTracker
	executor   ports.Executor
	logger     ports.Logger
	hub        *events.Hub
	stdout     io.Writer
	stderr     io.Writer
	newWatcher WatcherFactory
	teaOptions []tea.ProgramOption
	getenv     func(string) string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	reg *registry.Registry,
	tracker ports.StalenessTracker,
	executor ports.Executor,
	log ports.Logger,
	hub *events.Hub,
) *App {
	a := &App{
		loader:   loader,
		registry: reg,
		tracker:  tracker,
		executor: executor,
		logger:   log,
		hub:      hub,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		getenv:   os.Getenv,
	}
	a.newWatcher = func() (ports.Watcher, error) {
		return watcher.NewWatcher(a.logger)
	}
	return a
}

// WithOutput redirects progress and listing output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWatcherFactory replaces the file watcher used by Watch.
func (a *App) WithWatcherFactory(f WatcherFactory) *App {
	a.newWatcher = f
	return a
}

// WithTeaOptions appends options for the interactive progress view.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Options configures a single invocation.
type Options struct {
	// File is the build description. Empty means domain.DefaultBuildFile.
	File  string
	Dry   bool
	Quiet bool
	// Output selects the progress view: auto, tui, linear or ci.
	Output string
}

func (o Options) file() string {
	if o.File == "" {
		return domain.DefaultBuildFile
	}
	return o.File
}

// Build builds the requested targets in order.
func (a *App) Build(ctx context.Context, ids []string, opts Options) error {
	_, err := a.build(ctx, ids, opts)
	return err
}

func (a *App) build(ctx context.Context, ids []string, opts Options) ([]domain.TargetOutcome, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	mode, err := detector.ResolveMode(detector.DetectEnvironment(a.stderr, a.getenv), opts.Output)
	if err != nil {
		return nil, err
	}

	cfg, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tracer ports.Tracer = telemetry.NewNoOpTracer()
	if !opts.Quiet {
		otelTracer := telemetry.NewOTelTracer(a.renderer(ctx, mode, cancel))
		defer func() {
			_ = otelTracer.Shutdown(context.WithoutCancel(ctx))
		}()
		tracer = otelTracer
	}

	orch := orchestrator.New(a.registry, a.tracker, a.executor, a.logger, a.hub, tracer)
	outcomes, err := orch.Build(ctx, cfg, ids)

	// Without progress output the failed targets are only visible in the log.
	if opts.Quiet {
		for _, o := range outcomes {
			if o.Failed() {
				a.logger.Error(zerr.With(o.Err, "target", o.Target))
			}
		}
	}
	return outcomes, err
}

// renderer creates the progress view for mode. Leaving the interactive view
// cancels the build.
func (a *App) renderer(ctx context.Context, mode detector.OutputMode, cancel context.CancelFunc) ports.Renderer {
	if mode != detector.ModeTUI {
		return linear.NewRenderer(a.stdout, a.stderr)
	}

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.stderr)}, a.teaOptions...)
	r := tui.NewRenderer(tui.NewModel(), opts...).OnQuit(cancel)
	r.Start()
	return r
}

// Config runs a config sub-action and writes its listing to the app's stdout.
func (a *App) Config(_ context.Context, action string, opts Options) error {
	if action != ActionListTargets && action != ActionListProperties {
		return zerr.With(domain.ErrInvalidSubAction, "action", action)
	}

	cfg, err := a.load(opts)
	if err != nil {
		return err
	}

	switch action {
	case ActionListTargets:
		for _, name := range cfg.Targets.Names() {
			_, _ = fmt.Fprintf(a.stdout, "  %s\n", name)
		}
	case ActionListProperties:
		for name, value := range cfg.Properties.All() {
			_, _ = fmt.Fprintf(a.stdout, "%s: %s\n", name, value)
		}
	}
	return nil
}

func (a *App) load(opts Options) (*domain.Config, error) {
	if quieter, ok := a.logger.(interface{ SetQuiet(bool) }); ok {
		quieter.SetQuiet(opts.Quiet)
	}

	cfg, err := a.loader.Load(opts.file())
	if err != nil {
		return nil, err
	}
	cfg.Options = domain.Options{Dry: opts.Dry, Quiet: opts.Quiet}

	if a.hub != nil {
		a.hub.OnConfigLoaded(cfg)
	}
	return cfg, nil
}

// isFatal reports whether err should stop a watch session.
func isFatal(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrBuildFailed)
}

// watchRoot is the working directory. Resources, outputs and the project
// override file are all resolved against it.
func watchRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	return wd, nil
}
