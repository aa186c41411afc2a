package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/cmd/workbench/commands"
	"go.trai.ch/workbench/internal/app"
	"go.trai.ch/workbench/internal/build"
	"go.trai.ch/workbench/internal/core/domain"
)

type mockApp struct {
	buildFunc  func(ctx context.Context, ids []string, opts app.Options) error
	configFunc func(ctx context.Context, action string, opts app.Options) error
	watchFunc  func(ctx context.Context, ids []string, opts app.Options) error
}

func (m *mockApp) Build(ctx context.Context, ids []string, opts app.Options) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, ids, opts)
	}
	return nil
}

func (m *mockApp) Config(ctx context.Context, action string, opts app.Options) error {
	if m.configFunc != nil {
		return m.configFunc(ctx, action, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, ids []string, opts app.Options) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, ids, opts)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.Options
		var capturedIDs []string

		mock := &mockApp{
			buildFunc: func(_ context.Context, ids []string, opts app.Options) error {
				capturedOpts = opts
				capturedIDs = ids
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "app", "lib", "-f", "site.yaml", "--dry", "-q", "-o", "linear"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"app", "lib"}, capturedIDs)
		assert.Equal(t, app.Options{File: "site.yaml", Dry: true, Quiet: true, Output: "linear"}, capturedOpts)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.Options
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, opts app.Options) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "app"})
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.Options{File: domain.DefaultBuildFile, Output: "auto"}, capturedOpts)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("WORKBENCH_FILE", "env.json")
		t.Setenv("WORKBENCH_DRY", "true")
		t.Setenv("WORKBENCH_OUTPUT", "ci")

		var capturedOpts app.Options
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, opts app.Options) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "app"})
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.Options{File: "env.json", Dry: true, Output: "ci"}, capturedOpts)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, _ app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "app"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no targets provided", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, _ app.Options) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Config(t *testing.T) {
	var capturedAction string
	mock := &mockApp{
		configFunc: func(_ context.Context, action string, _ app.Options) error {
			capturedAction = action
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"config", "listproperties"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.ActionListProperties, capturedAction)

	cli = commands.New(mock)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"config"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Watch(t *testing.T) {
	var capturedIDs []string
	mock := &mockApp{
		watchFunc: func(_ context.Context, ids []string, _ app.Options) error {
			capturedIDs = ids
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "app"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, []string{"app"}, capturedIDs)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "workbench version "+build.Version)
}
