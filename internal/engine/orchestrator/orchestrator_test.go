package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/builders/noop"
	"go.trai.ch/workbench/internal/adapters/fs"
	"go.trai.ch/workbench/internal/adapters/telemetry"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/core/ports/mocks"
	"go.trai.ch/workbench/internal/engine/orchestrator"
	"go.trai.ch/workbench/internal/engine/registry"
	"go.uber.org/mock/gomock"
)

// produceCounter records calls to the noop production step.
type produceCounter struct {
	calls int
}

func (p *produceCounter) produce(_ context.Context, stale []string) ([]string, error) {
	p.calls++
	return stale, nil
}

func newRegistry(t *testing.T, counter *produceCounter) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.Plugin{
		ID:      "test",
		Builtin: true,
		Announce: func(r *registry.Registry) error {
			return r.Register(noop.Name, noop.Factory(counter.produce))
		},
	})
	require.NoError(t, err)
	return reg
}

func addTarget(t *testing.T, cfg *domain.Config, name, builder string, files ...string) {
	t.Helper()
	target, err := domain.NewTarget(name, builder, domain.MatchExact)
	require.NoError(t, err)
	for _, f := range files {
		target.Resources = append(target.Resources, domain.Resource{File: f})
	}
	require.NoError(t, cfg.Targets.Add(target))
}

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// newProject switches into a fresh directory holding src/a.js and returns a
// config with binDir "out" and target t1 built by noop.
func newProject(t *testing.T) *domain.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	writeFile(t, filepath.Join("src", "a.js"), time.Now().Add(-time.Hour))

	cfg := domain.NewConfig()
	cfg.Properties.Set(domain.BinDirProperty, "out")
	addTarget(t, cfg, "t1", noop.Name, "src/a.js")
	return cfg
}

func newOrchestrator(reg *registry.Registry, observer ports.Observer, tracer ports.Tracer) *orchestrator.Orchestrator {
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}
	return orchestrator.New(reg, fs.NewTracker(), nil, nil, observer, tracer)
}

func TestBuild_ProducesDerivedOutput(t *testing.T) {
	cfg := newProject(t)
	counter := &produceCounter{}

	outcomes, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(context.Background(), cfg, []string{"t1"})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, "t1", outcomes[0].Target)
	assert.Equal(t, domain.StatusBuilt, outcomes[0].Result.Status)
	assert.Equal(t, []string{filepath.Join("out", "a.min.js")}, outcomes[0].Result.Paths())
}

func TestBuild_SkipsFreshOutput(t *testing.T) {
	cfg := newProject(t)
	writeFile(t, filepath.Join("out", "a.min.js"), time.Now())
	counter := &produceCounter{}

	outcomes, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(context.Background(), cfg, []string{"t1"})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.Zero(t, counter.calls)
	assert.Equal(t, domain.StatusUpToDate, outcomes[0].Result.Status)
	assert.Equal(t, []domain.Output{{Path: filepath.Join("out", "a.min.js"), Status: domain.OutputSkipped}}, outcomes[0].Result.Outputs)
}

func TestBuild_UnknownBuilderIsFatal(t *testing.T) {
	cfg := newProject(t)
	addTarget(t, cfg, "t2", "unregistered", "src/a.js")
	counter := &produceCounter{}

	outcomes, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(context.Background(), cfg, []string{"t1", "t2"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownBuilder.Error())
	assert.Empty(t, outcomes)
	assert.Zero(t, counter.calls)
	assert.NoDirExists(t, "out")
}

func TestBuild_UnknownTargetIsFatal(t *testing.T) {
	cfg := newProject(t)
	counter := &produceCounter{}

	_, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(context.Background(), cfg, []string{"t1", "missing"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownTarget.Error())
	assert.Zero(t, counter.calls)
}

func TestBuild_UnknownPluginIsFatal(t *testing.T) {
	cfg := newProject(t)
	cfg.Plugins = []string{"missing-plugin"}

	_, err := newOrchestrator(newRegistry(t, &produceCounter{}), nil, nil).Build(context.Background(), cfg, []string{"t1"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownPlugin.Error())
}

func TestBuild_NoTargets(t *testing.T) {
	_, err := newOrchestrator(newRegistry(t, &produceCounter{}), nil, nil).Build(context.Background(), domain.NewConfig(), nil)
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestBuild_ExactNameWins(t *testing.T) {
	cfg := newProject(t)
	writeFile(t, filepath.Join("src", "b.js"), time.Now())
	addTarget(t, cfg, "a", noop.Name, "src/a.js")
	addTarget(t, cfg, "ab", noop.Name, "src/b.js")

	outcomes, err := newOrchestrator(newRegistry(t, &produceCounter{}), nil, nil).Build(context.Background(), cfg, []string{"ab"})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "ab", outcomes[0].Target)
	assert.Equal(t, []string{filepath.Join("out", "b.min.js")}, outcomes[0].Result.Paths())
}

func TestBuild_FailureIsPerTarget(t *testing.T) {
	cfg := newProject(t)
	addTarget(t, cfg, "broken", noop.Name, "src/missing.js")
	counter := &produceCounter{}

	ctrl := gomock.NewController(t)
	observer := mocks.NewMockObserver(ctrl)
	var seen []domain.TargetOutcome
	observer.EXPECT().OnBuildCompleted(gomock.Any()).Times(2).Do(func(o domain.TargetOutcome) {
		seen = append(seen, o)
	})

	outcomes, err := newOrchestrator(newRegistry(t, counter), observer, nil).
		Build(context.Background(), cfg, []string{"broken", "t1"})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorContains(t, err, domain.ErrResourceNotFound.Error())

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Failed())
	assert.Equal(t, domain.StatusFailed, outcomes[0].Result.Status)
	assert.False(t, outcomes[1].Failed())
	assert.Equal(t, domain.StatusBuilt, outcomes[1].Result.Status)
	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, outcomes, seen)
}

func TestBuild_DryRun(t *testing.T) {
	cfg := newProject(t)
	cfg.Options.Dry = true
	counter := &produceCounter{}

	outcomes, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(context.Background(), cfg, []string{"t1"})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Dry)
	assert.Zero(t, counter.calls)
	assert.Equal(t, domain.StatusDryRun, outcomes[0].Result.Status)
	assert.Equal(t, []domain.Output{{Path: filepath.Join("out", "a.min.js"), Status: domain.OutputPlanned}}, outcomes[0].Result.Outputs)
	assert.NoDirExists(t, "out")
}

func TestBuild_Spans(t *testing.T) {
	cfg := newProject(t)
	addTarget(t, cfg, "broken", noop.Name, "src/missing.js")

	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	okSpan := mocks.NewMockSpan(ctrl)
	badSpan := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().EmitPlan(gomock.Any(), []string{"t1", "broken"})
	gomock.InOrder(
		tracer.EXPECT().Start(gomock.Any(), "t1").Return(context.Background(), okSpan),
		okSpan.EXPECT().SetAttribute(ports.StatusAttribute, string(domain.StatusBuilt)),
		okSpan.EXPECT().End(),
		tracer.EXPECT().Start(gomock.Any(), "broken").Return(context.Background(), badSpan),
		badSpan.EXPECT().RecordError(gomock.Any()),
		badSpan.EXPECT().SetAttribute(ports.StatusAttribute, string(domain.StatusFailed)),
		badSpan.EXPECT().End(),
	)

	_, err := newOrchestrator(newRegistry(t, &produceCounter{}), nil, tracer).
		Build(context.Background(), cfg, []string{"t1", "broken"})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
}

func TestBuild_Cancelled(t *testing.T) {
	cfg := newProject(t)
	counter := &produceCounter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := newOrchestrator(newRegistry(t, counter), nil, nil).Build(ctx, cfg, []string{"t1"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
	assert.Zero(t, counter.calls)
}

func TestBuild_Clock(t *testing.T) {
	cfg := newProject(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	o := newOrchestrator(newRegistry(t, &produceCounter{}), nil, nil)
	o.SetClock(func() time.Time { return fixed })

	outcomes, err := o.Build(context.Background(), cfg, []string{"t1"})
	require.NoError(t, err)
	assert.Equal(t, fixed, outcomes[0].Started)
	assert.Equal(t, fixed, outcomes[0].Finished)
	assert.Equal(t, []string{"src/a.js"}, outcomes[0].Inputs)
}
