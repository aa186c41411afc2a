// Package orchestrator resolves requested targets and drives their builders.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Orchestrator builds targets one after another.
type Orchestrator struct {
	registry *registry.Registry
	tracker  ports.StalenessTracker
	executor ports.Executor
	logger   ports.Logger
	observer ports.Observer
	tracer   ports.Tracer
	now      func() time.Time
}

// New creates an Orchestrator.
func New(
	reg *registry.Registry,
	tracker ports.StalenessTracker,
	executor ports.Executor,
	logger ports.Logger,
	observer ports.Observer,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		tracker:  tracker,
		executor: executor,
		logger:   logger,
		observer: observer,
		tracer:   tracer,
		now:      time.Now,
	}
}

type plan struct {
	requested string
	target    *domain.Target
	factory   ports.BuilderFactory
}

// Build builds the targets named by ids in request order.
//
// Every identifier is resolved and every builder looked up before anything
// is built, so configuration errors abort the whole invocation. A resource or
// builder failure only fails its target; the returned error joins every such
// failure under domain.ErrBuildFailed.
func (o *Orchestrator) Build(ctx context.Context, cfg *domain.Config, ids []string) ([]domain.TargetOutcome, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	if err := o.registry.Load(cfg.Plugins); err != nil {
		return nil, err
	}

	plans, err := o.plan(cfg, ids)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = p.target.Name
	}
	o.tracer.EmitPlan(ctx, names)

	outcomes := make([]domain.TargetOutcome, 0, len(plans))
	var errs []error
	for _, p := range plans {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		outcome := o.buildTarget(ctx, cfg, p)
		outcomes = append(outcomes, outcome)
		if o.observer != nil {
			o.observer.OnBuildCompleted(outcome)
		}
		if outcome.Failed() {
			errs = append(errs, zerr.With(outcome.Err, "target", outcome.Target))
		}
	}

	if len(errs) > 0 {
		return outcomes, errors.Join(append([]error{domain.ErrBuildFailed}, errs...)...)
	}
	return outcomes, nil
}

func (o *Orchestrator) plan(cfg *domain.Config, ids []string) ([]plan, error) {
	plans := make([]plan, 0, len(ids))
	for _, id := range ids {
		target, err := cfg.Targets.Resolve(id)
		if err != nil {
			return nil, err
		}
		factory, err := o.registry.Lookup(target.Builder)
		if err != nil {
			return nil, zerr.With(err, "target", target.Name)
		}
		plans = append(plans, plan{requested: id, target: target, factory: factory})
	}
	return plans, nil
}

func (o *Orchestrator) buildTarget(ctx context.Context, cfg *domain.Config, p plan) domain.TargetOutcome {
	ctx, span := o.tracer.Start(ctx, p.target.Name)
	defer span.End()

	outcome := domain.TargetOutcome{
		Requested: p.requested,
		Target:    p.target.Name,
		Builder:   p.target.Builder,
		Inputs:    domain.ResourceFiles(p.target.Resources),
		Started:   o.now(),
		Dry:       cfg.Options.Dry,
	}

	result, err := o.run(ctx, cfg, p, span)
	outcome.Finished = o.now()
	if err != nil {
		outcome.Err = err
		outcome.Result = domain.BuildResult{Status: domain.StatusFailed}
		span.RecordError(err)
		span.SetAttribute(ports.StatusAttribute, string(domain.StatusFailed))
		return outcome
	}

	outcome.Result = result
	span.SetAttribute(ports.StatusAttribute, string(result.Status))
	return outcome
}

func (o *Orchestrator) run(ctx context.Context, cfg *domain.Config, p plan, span ports.Span) (domain.BuildResult, error) {
	host := &ports.BuilderHost{
		Config:     cfg,
		Properties: cfg.Properties.With(domain.TargetProperty, p.target.Name),
		Target:     p.target.Name,
		Requested:  p.requested,
		Tracker:    o.tracker,
		Executor:   o.executor,
		Logger:     o.logger,
		Stdout:     span,
		Stderr:     span,
	}

	builder := p.factory(host)
	if err := builder.SetData(p.target.Data); err != nil {
		return domain.BuildResult{}, err
	}
	if err := builder.SetResources(p.target.Resources); err != nil {
		return domain.BuildResult{}, err
	}
	return builder.Build(ctx)
}
