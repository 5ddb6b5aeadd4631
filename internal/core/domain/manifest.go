package domain

import (
	"maps"
	"slices"
)

// FileRecord describes one file of a package.
type FileRecord struct {
	// Hash is the content digest, filled during version resolution.
	Hash string
	// Version is the binary's own declared version, if it has one.
	Version string
	// IsVersionSource marks the file as authoritative for the package version.
	IsVersionSource bool
}

// Configuration is a default configuration shipped with a package. The content is opaque.
type Configuration struct {
	Name    string
	Content string
}

// PackageManifest is a package descriptor as loaded from disk.
// It is treated as read-only once loaded; all build mutations go through PackageBuildState.
type PackageManifest struct {
	Name                  string
	Version               string
	InterfaceVersion      string
	License               string
	SkipDelivery          bool
	BundleHash            string
	Dependencies          map[string]string
	Files                 map[string]FileRecord
	PreloadAssemblies     []string
	DefaultConfigurations []Configuration
}

// Clone returns a deep copy of the manifest.
func (m *PackageManifest) Clone() *PackageManifest {
	c := *m
	c.Dependencies = cloneMap(m.Dependencies)
	c.Files = cloneMap(m.Files)
	c.PreloadAssemblies = slices.Clone(m.PreloadAssemblies)
	c.DefaultConfigurations = slices.Clone(m.DefaultConfigurations)
	return &c
}

// Normalized returns a deep copy whose file paths are in canonical form.
// When two spellings name the same file the record of the lexically last one is kept.
func (m *PackageManifest) Normalized() *PackageManifest {
	c := m.Clone()
	c.Files = make(map[string]FileRecord, len(m.Files))
	for _, p := range m.SortedFiles() {
		c.Files[CleanPath(p)] = m.Files[p]
	}
	return c
}

// SortedFiles returns the manifest's file paths in lexical order.
func (m *PackageManifest) SortedFiles() []string {
	return slices.Sorted(maps.Keys(m.Files))
}

// SortedDependencies returns the manifest's dependency names in lexical order.
func (m *PackageManifest) SortedDependencies() []string {
	return slices.Sorted(maps.Keys(m.Dependencies))
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	maps.Copy(out, m)
	return out
}
