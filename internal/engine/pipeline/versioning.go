package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

// ResolveVersions hashes every file, applies binary self-versioning and the injection
// policy, propagates exact-match pins and fills in the remaining defaults.
func (r *Run) ResolveVersions(ctx context.Context, v ports.Vertex) error {
	if err := r.hashFiles(ctx); err != nil {
		return err
	}
	r.applyBinaryVersions()

	for _, name := range r.builds.Names() {
		r.versions.Set(name, r.builds[name].Version())
	}

	globalInterface := false
	if policy := r.opts.Policy; policy != nil {
		var err error
		if globalInterface, err = r.applyPolicy(policy); err != nil {
			return err
		}
	}

	r.propagateExactMatches()

	for _, name := range r.builds.Names() {
		b := r.builds[name]
		if b.Version() == "" {
			b.SetVersion(domain.DefaultVersion)
		}
		if globalInterface || b.InterfaceVersion() == "" {
			b.SetInterfaceVersion(r.versions.InterfaceVersion)
		}
		v.Log(fmt.Sprintf("%s %s (interface %s)", name, b.Version(), b.InterfaceVersion()))
	}
	return r.checkFeedSegments()
}

// checkFeedSegments rejects deliverable packages whose versions would escape their feed directory.
func (r *Run) checkFeedSegments() error {
	findings := domain.NewFindings(domain.ErrVersionResolution)
	for _, name := range r.builds.Names() {
		b := r.builds[name]
		if b.SkipDelivery() || r.opts.SkipList.Has(name) {
			continue
		}
		for _, segment := range []string{b.InterfaceVersion(), b.Version()} {
			if !domain.IsPathSegment(segment) {
				findings.Add(domain.ErrInvalidPathSegment,
					fmt.Sprintf("package %q resolves to version %q, which cannot be used in the feed", name, segment),
					"package", name, "version", segment)
			}
		}
	}
	return findings.Err()
}

type fileRef struct {
	pkg  string
	path string
}

// hashFiles digests every package file concurrently and records the results in path order.
func (r *Run) hashFiles(ctx context.Context) error {
	var files []fileRef
	for _, name := range r.builds.Names() {
		for _, path := range r.builds[name].Files() {
			files = append(files, fileRef{pkg: name, path: path})
		}
	}

	hashes := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Config.Jobs)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := r.p.hasher.ComputeFileHash(r.abs(f.path))
			if err != nil {
				return zerr.With(fmt.Errorf("%w: %w", domain.ErrIO, err), "package", f.pkg)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, f := range files {
		r.builds[f.pkg].SetFileHash(f.path, hashes[i])
	}
	return nil
}

// applyBinaryVersions records each binary's declared version. A version-source binary
// also supplies the package version and license.
func (r *Run) applyBinaryVersions() {
	exts := r.opts.Config.BinaryExtensions
	for _, name := range r.builds.Names() {
		b := r.builds[name]
		for _, path := range b.Files() {
			if !domain.IsBinary(path, exts) {
				continue
			}
			meta := r.inspect(path)
			if meta == nil {
				continue
			}
			b.SetFileVersion(path, meta.Version)
			if rec, _ := b.File(path); !rec.IsVersionSource || meta.Version == "" {
				continue
			}
			b.SetVersion(meta.Version)
			if meta.Copyright != "" {
				b.SetLicense(meta.Copyright)
			}
		}
	}
}

// applyPolicy evaluates the directives in document order. It reports whether the
// policy set the interface version explicitly.
func (r *Run) applyPolicy(policy *domain.VersionPolicy) (bool, error) {
	findings := domain.NewFindings(domain.ErrVersionResolution)
	globalInterface := false

	for _, d := range policy.Directives {
		switch d.Kind {
		case domain.DirectiveInterfaceVersion:
			if d.Version != "" {
				r.versions.InterfaceVersion = d.Version
				globalInterface = true
			}
		case domain.DirectiveDefaultVersion:
			for _, name := range r.builds.Names() {
				if _, ok := r.versions.Get(name); !ok {
					r.versions.Set(name, d.Version)
				}
			}
		case domain.DirectivePackage:
			b, ok := r.builds[d.Name]
			if !ok {
				if r.opts.Config.Partial {
					r.p.logger.Warn(fmt.Sprintf("version policy names %q, which is not part of this build", d.Name))
					continue
				}
				findings.Add(domain.ErrUnknownPolicyPackage,
					fmt.Sprintf("version policy names unknown package %q", d.Name), "package", d.Name)
				continue
			}
			r.applyPackageDirective(b, d)
		}
	}

	for _, name := range r.builds.Names() {
		b := r.builds[name]
		version, ok := r.versions.Get(name)
		if ok {
			b.SetVersion(version)
			continue
		}
		if !b.SkipDelivery() {
			findings.Add(domain.ErrMissingVersion,
				fmt.Sprintf("no version could be resolved for package %q", name), "package", name)
		}
	}
	return globalInterface, findings.Err()
}

func (r *Run) applyPackageDirective(b *domain.PackageBuildState, d domain.Directive) {
	var version, license string
	switch {
	case d.Version != "":
		version = d.Version
	case d.VersionSource != "":
		if meta := r.inspect(d.VersionSource); meta != nil {
			version, license = meta.Version, meta.Copyright
		}
	case d.VersionFromPackageFiles:
		version, _ = b.FirstFileVersion()
	}
	if d.License != "" {
		license = d.License
	}

	if version != "" {
		r.versions.Set(b.Name(), version)
	}
	if license != "" {
		b.SetLicense(license)
	}
	if d.ExactMatch {
		r.versions.MarkExact(b.Name())
	}
}

// propagateExactMatches pins every dependency on an exact-match package to its resolved version.
func (r *Run) propagateExactMatches() {
	for _, name := range r.builds.Names() {
		b := r.builds[name]
		for _, dep := range b.Dependencies() {
			if !r.versions.IsExact(dep) {
				continue
			}
			if version, ok := r.versions.Get(dep); ok {
				b.SetDependency(dep, version)
			}
		}
	}
}
