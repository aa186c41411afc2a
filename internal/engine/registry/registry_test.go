package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/registry"
)

func factory(_ *ports.BuilderHost) ports.Builder { return nil }

func announcing(names ...string) func(*registry.Registry) error {
	return func(r *registry.Registry) error {
		for _, name := range names {
			if err := r.Register(name, factory); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestNew_AnnouncesBuiltins(t *testing.T) {
	r, err := registry.New(
		registry.Plugin{ID: "core", Builtin: true, Announce: announcing("noop", "command")},
		registry.Plugin{ID: "extra", Announce: announcing("extra")},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"command", "noop"}, r.Names())
	assert.Equal(t, []string{"core", "extra"}, r.Plugins())

	_, err = r.Lookup("extra")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownBuilder.Error())
}

func TestNew_AnnounceFailure(t *testing.T) {
	_, err := registry.New(registry.Plugin{
		ID:      "broken",
		Builtin: true,
		Announce: func(*registry.Registry) error {
			return errors.New("cannot announce")
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot announce")
}

func TestRegister_Duplicate(t *testing.T) {
	r, err := registry.New()
	require.NoError(t, err)

	require.NoError(t, r.Register("noop", factory))
	err = r.Register("noop", factory)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDuplicateBuilder.Error())
}

func TestLookup(t *testing.T) {
	r, err := registry.New()
	require.NoError(t, err)
	require.NoError(t, r.Register("noop", factory))

	got, err := r.Lookup("noop")
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = r.Lookup("missing")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownBuilder.Error())
}

func TestLoad(t *testing.T) {
	calls := 0
	r, err := registry.New(registry.Plugin{
		ID: "extra",
		Announce: func(r *registry.Registry) error {
			calls++
			return r.Register("extra", factory)
		},
	})
	require.NoError(t, err)
	assert.Empty(t, r.Names())

	require.NoError(t, r.Load([]string{"extra"}))
	require.NoError(t, r.Load([]string{"extra"}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"extra"}, r.Names())

	err = r.Load([]string{"nope"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownPlugin.Error())
}

func TestLoad_FailedAnnounceRollsBack(t *testing.T) {
	fail := true
	r, err := registry.New(
		registry.Plugin{ID: "core", Builtin: true, Announce: announcing("noop")},
		registry.Plugin{
			ID: "extra",
			Announce: func(r *registry.Registry) error {
				if err := r.Register("first", factory); err != nil {
					return err
				}
				if fail {
					return errors.New("second builder unavailable")
				}
				return r.Register("second", factory)
			},
		},
	)
	require.NoError(t, err)

	err = r.Load([]string{"extra"})
	require.Error(t, err)
	assert.Equal(t, []string{"noop"}, r.Names())

	fail = false
	require.NoError(t, r.Load([]string{"extra"}))
	assert.Equal(t, []string{"first", "noop", "second"}, r.Names())
}
