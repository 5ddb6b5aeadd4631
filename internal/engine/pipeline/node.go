package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packager/internal/adapters/archive"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/adapters/inspector"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/adapters/manifest"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/packager/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			inspector.NodeID,
			fs.HasherNodeID,
			archive.NodeID,
			manifest.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			scanner, err := graft.Dep[ports.TreeScanner](ctx)
			if err != nil {
				return nil, err
			}

			binaryInspector, err := graft.Dep[ports.BinaryInspector](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				scanner,
				binaryInspector,
				hasher,
				archiver,
				store,
				telemetry,
				log,
			), nil
		},
	})
}
