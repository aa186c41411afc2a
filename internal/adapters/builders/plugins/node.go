package plugins

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/workbench/internal/adapters/logger" //nolint:depguard // Wired in adapter layer
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/registry" //nolint:depguard // Wired in adapter layer
)

// NodeID is the unique identifier for the builder registry Graft node.
const NodeID graft.ID = "adapter.builder_registry"

func init() {
	graft.Register(graft.Node[*registry.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*registry.Registry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(nil, log)
		},
	})
}
