package events

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/workbench/internal/adapters/cas" //nolint:depguard // Wired in engine layer
)

// NodeID is the unique identifier for the event hub Graft node.
const NodeID graft.ID = "engine.events"

func init() {
	graft.Register(graft.Node[*Hub]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.ReporterNodeID},
		Run: func(ctx context.Context) (*Hub, error) {
			reporter, err := graft.Dep[*cas.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return NewHub(reporter), nil
		},
	})
}
