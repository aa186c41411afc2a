package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/workbench/internal/adapters/builders/plugins" //nolint:depguard // Wired in app layer
	"go.trai.ch/workbench/internal/adapters/config"           //nolint:depguard // Wired in app layer
	"go.trai.ch/workbench/internal/adapters/fs"               //nolint:depguard // Wired in app layer
	"go.trai.ch/workbench/internal/adapters/logger"           //nolint:depguard // Wired in app layer
	"go.trai.ch/workbench/internal/adapters/shell"            //nolint:depguard // Wired in app layer
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/engine/events"
	"go.trai.ch/workbench/internal/engine/registry"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			plugins.NodeID,
			fs.TrackerNodeID,
			shell.NodeID,
			logger.NodeID,
			events.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}
	tracker, err := graft.Dep[ports.StalenessTracker](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	hub, err := graft.Dep[*events.Hub](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, reg, tracker, executor, log, hub), nil
}
