package plugins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/builders/closure"
	"go.trai.ch/workbench/internal/adapters/builders/plugins"
	"go.trai.ch/workbench/internal/core/domain"
)

func TestNewRegistry(t *testing.T) {
	r, err := plugins.NewRegistry(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"command", "noop"}, r.Names())
	assert.Equal(t, []string{closure.Name, plugins.CoreID}, r.Plugins())

	_, err = r.Lookup(closure.Name)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownBuilder.Error())

	require.NoError(t, r.Load([]string{closure.Name}))
	assert.Equal(t, []string{"closure-compiler", "command", "noop"}, r.Names())

	factory, err := r.Lookup(closure.Name)
	require.NoError(t, err)
	assert.NotNil(t, factory)
}
