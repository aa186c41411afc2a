package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/workbench/internal/adapters/fs"     //nolint:depguard // Wired in adapter layer
	"go.trai.ch/workbench/internal/adapters/logger" //nolint:depguard // Wired in adapter layer
	"go.trai.ch/workbench/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the report store Graft node.
	NodeID graft.ID = "adapter.report_store"
	// ReporterNodeID is the unique identifier for the report observer Graft node.
	ReporterNodeID graft.ID = "adapter.reporter"
)

func init() {
	graft.Register(graft.Node[ports.ReportStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReportStore, error) {
			return NewStore("."), nil
		},
	})

	graft.Register(graft.Node[*Reporter]{
		ID:        ReporterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Reporter, error) {
			store, err := graft.Dep[ports.ReportStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReporter(store, hasher, log), nil
		},
	})
}
