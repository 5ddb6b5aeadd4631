// Package pipeline implements the packaging stages: dependency validation, inventory
// reconciliation, binary reference inference, version resolution, bundling and publishing.
package pipeline

import (
	"context"
	"path"
	"path/filepath"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
)

// Pipeline holds the collaborators shared by every run.
type Pipeline struct {
	scanner   ports.TreeScanner
	inspector ports.BinaryInspector
	hasher    ports.Hasher
	archiver  ports.Archiver
	store     ports.ManifestStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Pipeline.
func New(
	scanner ports.TreeScanner,
	inspector ports.BinaryInspector,
	hasher ports.Hasher,
	archiver ports.Archiver,
	store ports.ManifestStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		scanner:   scanner,
		inspector: inspector,
		hasher:    hasher,
		archiver:  archiver,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Options configures one run.
type Options struct {
	Config domain.Config
	// Policy is the version injection policy, nil when none is present.
	Policy   *domain.VersionPolicy
	SkipList domain.NameSet
	HideList domain.NameSet
}

// Result summarizes a run.
type Result struct {
	// Packages holds the final state of every package, ordered by name.
	Packages []*domain.PackageManifest
	// Published lists the packages that were bundled and written to the feed.
	Published []string
}

// Run is the state of one pipeline invocation. Stages must be called in order.
type Run struct {
	p    *Pipeline
	opts Options

	manifests []*domain.PackageManifest
	builds    domain.BuildSet
	inventory *domain.FileInventory
	versions  *domain.VersionTable
	published []string

	inspected map[string]*domain.BinaryMetadata
}

// NewRun rejects duplicate or unusable package names and starts a build state for
// every manifest. File paths are brought into canonical form first.
func (p *Pipeline) NewRun(manifests []*domain.PackageManifest, opts Options) (*Run, error) {
	if err := CheckDuplicateNames(manifests); err != nil {
		return nil, err
	}
	if err := CheckPackageNames(manifests); err != nil {
		return nil, err
	}
	if opts.Config.Jobs < 1 {
		opts.Config.Jobs = 1
	}

	normalized := make([]*domain.PackageManifest, 0, len(manifests))
	for _, m := range manifests {
		normalized = append(normalized, m.Normalized())
	}

	return &Run{
		p:         p,
		opts:      opts,
		manifests: sortedByName(normalized),
		builds:    domain.StartBuilds(normalized),
		versions:  domain.NewVersionTable(),
		inspected: make(map[string]*domain.BinaryMetadata),
	}, nil
}

type stage struct {
	name string
	fn   func(context.Context, ports.Vertex) error
}

// Run executes every stage and publishes the feed.
func (p *Pipeline) Run(ctx context.Context, manifests []*domain.PackageManifest, opts Options) (*Result, error) {
	r, err := p.NewRun(manifests, opts)
	if err != nil {
		return nil, err
	}
	if err := r.execute(ctx, append(r.validationStages(), r.outputStages()...)); err != nil {
		return nil, err
	}
	return r.Result(), nil
}

// Verify executes the validation and resolution stages without writing any output.
func (p *Pipeline) Verify(ctx context.Context, manifests []*domain.PackageManifest, opts Options) (*Result, error) {
	r, err := p.NewRun(manifests, opts)
	if err != nil {
		return nil, err
	}
	if err := r.execute(ctx, r.validationStages()); err != nil {
		return nil, err
	}
	return r.Result(), nil
}

func (r *Run) validationStages() []stage {
	return []stage{
		{name: "validate dependencies", fn: r.ValidateDependencies},
		{name: "reconcile inventory", fn: r.ReconcileInventory},
		{name: "infer dependencies", fn: r.InferDependencies},
		{name: "resolve versions", fn: r.ResolveVersions},
	}
}

func (r *Run) outputStages() []stage {
	return []stage{
		{name: "build packages", fn: r.BuildPackages},
		{name: "publish feed", fn: r.PublishFeed},
	}
}

func (r *Run) execute(ctx context.Context, stages []stage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		stageCtx, v := r.p.telemetry.Record(ctx, s.name)
		err := s.fn(stageCtx, v)
		v.Complete(err)
		if err != nil {
			return err
		}
	}
	return nil
}

// Result returns the current state of the run.
func (r *Run) Result() *Result {
	res := &Result{Published: append([]string(nil), r.published...)}
	for _, name := range r.builds.Names() {
		res.Packages = append(res.Packages, r.builds[name].Manifest())
	}
	return res
}

// Build returns the working state of the named package.
func (r *Run) Build(name string) (*domain.PackageBuildState, bool) {
	b, ok := r.builds[name]
	return b, ok
}

// abs returns the filesystem path of a root-relative, slash-separated path.
func (r *Run) abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(r.opts.Config.Root, filepath.FromSlash(rel))
}

// inspect returns the metadata of a binary, memoized per path. Failures yield nil.
func (r *Run) inspect(rel string) *domain.BinaryMetadata {
	key := path.Clean(filepath.ToSlash(rel))
	if meta, ok := r.inspected[key]; ok {
		return meta
	}
	meta, err := r.p.inspector.Inspect(r.abs(rel))
	if err != nil {
		meta = nil
	}
	r.inspected[key] = meta
	return meta
}
