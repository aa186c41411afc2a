package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/workbench/internal/core/ports"
)

const (
	// TrackerNodeID is the unique identifier for the staleness tracker Graft node.
	TrackerNodeID graft.ID = "adapter.fs.tracker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.StalenessTracker]{
		ID:        TrackerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessTracker, error) {
			return NewTracker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
