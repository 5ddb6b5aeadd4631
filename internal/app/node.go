package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packager/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/packager/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/packager/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/packager/internal/adapters/policy"             //nolint:depguard // Wired in app layer
	"go.trai.ch/packager/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/packager/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			policy.NodeID,
			pipeline.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	policies, err := graft.Dep[ports.PolicyLoader](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[*pipeline.Pipeline](ctx)
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

	return New(loader, store, policies, p, telemetry, log), nil
}
