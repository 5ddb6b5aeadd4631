package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
)

// CheckDuplicateNames fails when two manifests share a package name.
func CheckDuplicateNames(manifests []*domain.PackageManifest) error {
	seen := make(map[string]int, len(manifests))
	for _, m := range manifests {
		seen[m.Name]++
	}
	findings := domain.NewFindings(domain.ErrDuplicateManifestName)
	for _, m := range sortedByName(manifests) {
		if n := seen[m.Name]; n > 1 {
			findings.Add(domain.ErrDuplicateManifestName,
				fmt.Sprintf("package %q is declared %d times", m.Name, n), "package", m.Name)
			seen[m.Name] = 0
		}
	}
	return findings.Err()
}

// CheckPackageNames fails when a package name cannot be used as a feed file name.
func CheckPackageNames(manifests []*domain.PackageManifest) error {
	findings := domain.NewFindings(domain.ErrManifestLoad)
	for _, m := range sortedByName(manifests) {
		if !domain.IsPathSegment(m.Name) {
			findings.Add(domain.ErrInvalidPathSegment,
				fmt.Sprintf("package name %q cannot be used in the feed", m.Name), "package", m.Name)
		}
	}
	return findings.Err()
}

// ValidateDependencies checks every declared dependency against the loaded packages.
// Unknown dependencies are only reported as warnings in partial mode.
func (r *Run) ValidateDependencies(_ context.Context, v ports.Vertex) error {
	findings := domain.NewFindings(domain.ErrDependencyGraph)
	for _, m := range r.manifests {
		for _, dep := range m.SortedDependencies() {
			switch {
			case dep == m.Name:
				findings.Add(domain.ErrSelfDependency,
					fmt.Sprintf("package %q depends on itself", m.Name), "package", m.Name)
			case r.builds[dep] == nil && r.opts.Config.Partial:
				r.p.logger.Warn(fmt.Sprintf("package %q depends on %q, which is not part of this build", m.Name, dep))
			case r.builds[dep] == nil:
				findings.Add(domain.ErrUnknownDependency,
					fmt.Sprintf("package %q depends on unknown package %q", m.Name, dep),
					"package", m.Name, "dependency", dep)
			}
		}
	}
	if err := findings.Err(); err != nil {
		return err
	}
	v.Log(fmt.Sprintf("%d packages, dependencies consistent", len(r.manifests)))
	return nil
}

func sortedByName(manifests []*domain.PackageManifest) []*domain.PackageManifest {
	out := slices.Clone(manifests)
	slices.SortStableFunc(out, func(a, b *domain.PackageManifest) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
