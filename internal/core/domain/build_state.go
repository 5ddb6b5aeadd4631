package domain

import (
	"maps"
	"slices"
)

// PackageBuildState is the mutable working copy of a manifest during a run.
// It shares no collections with the manifest it was started from.
type PackageBuildState struct {
	m *PackageManifest
}

// StartBuild creates a build state from a loaded manifest.
func StartBuild(m *PackageManifest) *PackageBuildState {
	return &PackageBuildState{m: m.Clone()}
}

// Name returns the package name.
func (s *PackageBuildState) Name() string { return s.m.Name }

// Version returns the package version resolved so far.
func (s *PackageBuildState) Version() string { return s.m.Version }

// SetVersion sets the package version.
func (s *PackageBuildState) SetVersion(v string) { s.m.Version = v }

// InterfaceVersion returns the interface version resolved so far.
func (s *PackageBuildState) InterfaceVersion() string { return s.m.InterfaceVersion }

// SetInterfaceVersion sets the interface version.
func (s *PackageBuildState) SetInterfaceVersion(v string) { s.m.InterfaceVersion = v }

// License returns the package license text.
func (s *PackageBuildState) License() string { return s.m.License }

// SetLicense sets the package license text.
func (s *PackageBuildState) SetLicense(l string) { s.m.License = l }

// SkipDelivery reports whether the package is excluded from delivery.
func (s *PackageBuildState) SkipDelivery() bool { return s.m.SkipDelivery }

// BundleHash returns the digest of the built bundle.
func (s *PackageBuildState) BundleHash() string { return s.m.BundleHash }

// SetBundleHash records the digest of the built bundle.
func (s *PackageBuildState) SetBundleHash(h string) { s.m.BundleHash = h }

// HasDependency reports whether name is a declared dependency.
func (s *PackageBuildState) HasDependency(name string) bool {
	_, ok := s.m.Dependencies[name]
	return ok
}

// SetDependency declares or re-pins a dependency.
func (s *PackageBuildState) SetDependency(name, pin string) {
	s.m.Dependencies[name] = pin
}

// Dependencies returns the dependency names in lexical order.
func (s *PackageBuildState) Dependencies() []string {
	return s.m.SortedDependencies()
}

// Files returns the file paths in lexical order.
func (s *PackageBuildState) Files() []string {
	return s.m.SortedFiles()
}

// File returns the record for the given path.
func (s *PackageBuildState) File(path string) (FileRecord, bool) {
	r, ok := s.m.Files[path]
	return r, ok
}

// SetFileHash records the content digest of a file.
func (s *PackageBuildState) SetFileHash(path, hash string) {
	r := s.m.Files[path]
	r.Hash = hash
	s.m.Files[path] = r
}

// SetFileVersion records the declared version of a binary file.
func (s *PackageBuildState) SetFileVersion(path, version string) {
	r := s.m.Files[path]
	r.Version = version
	s.m.Files[path] = r
}

// FirstFileVersion returns the first non-empty file version in path order.
func (s *PackageBuildState) FirstFileVersion() (string, bool) {
	for _, p := range s.Files() {
		if v := s.m.Files[p].Version; v != "" {
			return v, true
		}
	}
	return "", false
}

// Manifest returns a snapshot of the current state as a manifest.
func (s *PackageBuildState) Manifest() *PackageManifest {
	return s.m.Clone()
}

// BuildSet holds one build state per package name.
type BuildSet map[string]*PackageBuildState

// StartBuilds creates a build state for every manifest.
func StartBuilds(manifests []*PackageManifest) BuildSet {
	set := make(BuildSet, len(manifests))
	for _, m := range manifests {
		set[m.Name] = StartBuild(m)
	}
	return set
}

// Names returns the package names in lexical order.
func (b BuildSet) Names() []string {
	return slices.Sorted(maps.Keys(b))
}
