// Package app implements the application layer for packager.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/packager/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestStore
	policies     ports.PolicyLoader
	pipeline     *pipeline.Pipeline
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestStore,
	policies ports.PolicyLoader,
	p *pipeline.Pipeline,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		manifests:    manifests,
		policies:     policies,
		pipeline:     p,
		telemetry:    telemetry,
		logger:       log,
	}
}

// RunOptions configuration for the Build and Verify methods.
type RunOptions struct {
	// Root is the release tree root. Defaults to the working directory.
	Root string
	// ConfigPath points at an explicit configuration file.
	ConfigPath string
	// Partial downgrades cross-package completeness errors to warnings.
	Partial bool
	// Jobs overrides the configured hashing concurrency when positive.
	Jobs int
	// LogJSON switches the logger to JSON output.
	LogJSON bool
}

// Build validates the release tree, bundles every deliverable package and publishes the feed.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	manifests, pipelineOpts, err := a.prepare(opts)
	if err != nil {
		return err
	}
	defer a.closeTelemetry()

	res, err := a.pipeline.Run(ctx, manifests, pipelineOpts)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Published %d of %d packages to %s",
		len(res.Published), len(res.Packages), pipelineOpts.Config.FeedDir))
	return nil
}

// Verify runs every validation and version resolution stage without writing output.
func (a *App) Verify(ctx context.Context, opts RunOptions) error {
	manifests, pipelineOpts, err := a.prepare(opts)
	if err != nil {
		return err
	}
	defer a.closeTelemetry()

	res, err := a.pipeline.Verify(ctx, manifests, pipelineOpts)
	if err != nil {
		return err
	}

	for _, m := range res.Packages {
		a.logger.Info(fmt.Sprintf("%s %s (interface %s)", m.Name, m.Version, m.InterfaceVersion))
	}
	a.logger.Info(fmt.Sprintf("Verified %d packages", len(res.Packages)))
	return nil
}

// prepare loads the configuration, the package manifests and the policy files.
func (a *App) prepare(opts RunOptions) ([]*domain.PackageManifest, pipeline.Options, error) {
	a.configureLogging(opts.LogJSON)

	root := opts.Root
	if root == "" {
		root = "."
	}
	cfg, err := a.configLoader.Load(root, opts.ConfigPath)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	if opts.Partial {
		cfg.Partial = true
	}
	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}

	manifests, err := a.manifests.LoadDir(cfg.PackagesDir)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	if len(manifests) == 0 {
		a.logger.Warn(fmt.Sprintf("no package manifests found in %s", cfg.PackagesDir))
	}

	policy, err := a.policies.LoadVersionPolicy(cfg.VersionInjection)
	if err != nil {
		return nil, pipeline.Options{}, zerr.Wrap(err, "failed to load version injection policy")
	}
	skip, err := a.policies.LoadNameList(cfg.SkipList)
	if err != nil {
		return nil, pipeline.Options{}, zerr.Wrap(err, "failed to load skip list")
	}
	hide, err := a.policies.LoadNameList(cfg.HideList)
	if err != nil {
		return nil, pipeline.Options{}, zerr.Wrap(err, "failed to load hide list")
	}

	return manifests, pipeline.Options{
		Config:   cfg,
		Policy:   policy,
		SkipList: skip,
		HideList: hide,
	}, nil
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

func (a *App) configureLogging(jsonMode bool) {
	if !jsonMode {
		return
	}
	if s, ok := a.logger.(jsonSwitcher); ok {
		s.SetJSON(true)
	}
}

func (a *App) closeTelemetry() {
	if err := a.telemetry.Close(); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
	}
}
