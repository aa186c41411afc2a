// Package plugins assembles the compiled-in builder plugin catalog.
package plugins

import (
	"net/http"

	"go.trai.ch/workbench/internal/adapters/builders/closure"
	"go.trai.ch/workbench/internal/adapters/builders/command"
	"go.trai.ch/workbench/internal/adapters/builders/noop"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/registry" //nolint:depguard // Catalog is assembled in the adapter layer
)

// CoreID is the builtin plugin that provides noop and command.
const CoreID = "core"

// Catalog returns every compiled-in plugin. The closure plugin downloads its
// jar through client and reuses it for the lifetime of the catalog.
func Catalog(client *http.Client, logger ports.Logger) []registry.Plugin {
	jars := closure.NewJarLocator(client, logger)
	return []registry.Plugin{
		{
			ID:      CoreID,
			Builtin: true,
			Announce: func(r *registry.Registry) error {
				if err := r.Register(noop.Name, noop.Factory(nil)); err != nil {
					return err
				}
				return r.Register(command.Name, command.Factory)
			},
		},
		{
			ID: closure.Name,
			Announce: func(r *registry.Registry) error {
				return r.Register(closure.Name, closure.Factory(jars))
			},
		},
	}
}

// NewRegistry creates a registry over the full catalog.
func NewRegistry(client *http.Client, logger ports.Logger) (*registry.Registry, error) {
	return registry.New(Catalog(client, logger)...)
}
