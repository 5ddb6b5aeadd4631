package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// BinaryMetadata is what an inspector extracts from a compiled binary.
type BinaryMetadata struct {
	ModuleName string
	Version    string
	References []string
	Copyright  string
}

// ModuleReferenceGraph maps binary modules to their owning package and their references.
type ModuleReferenceGraph struct {
	owners     map[string]string
	references map[string][]string
}

// NewModuleReferenceGraph creates an empty graph.
func NewModuleReferenceGraph() *ModuleReferenceGraph {
	return &ModuleReferenceGraph{
		owners:     make(map[string]string),
		references: make(map[string][]string),
	}
}

// Add records a module. The first owner recorded for a module name wins.
func (g *ModuleReferenceGraph) Add(module, owner string, references []string) bool {
	if _, ok := g.owners[module]; ok {
		return false
	}
	g.owners[module] = owner
	g.references[module] = slices.Clone(references)
	return true
}

// Owner returns the package that owns the module.
func (g *ModuleReferenceGraph) Owner(module string) (string, bool) {
	o, ok := g.owners[module]
	return o, ok
}

// References returns the modules referenced by the given module.
func (g *ModuleReferenceGraph) References(module string) []string {
	return g.references[module]
}

// Modules returns all module names in lexical order.
func (g *ModuleReferenceGraph) Modules() []string {
	return slices.Sorted(maps.Keys(g.owners))
}

// RuntimeModules identifies framework modules that are never packaged.
type RuntimeModules struct {
	Prefixes []string
	Names    []string
}

// DefaultRuntimeModules returns the built-in runtime module predicate.
func DefaultRuntimeModules() RuntimeModules {
	return RuntimeModules{
		Prefixes: []string{"System."},
		Names:    []string{"mscorlib", "netstandard", "System", "Microsoft.CSharp", "Mono.Posix"},
	}
}

// IsRuntime reports whether the module belongs to the runtime.
func (r RuntimeModules) IsRuntime(module string) bool {
	if slices.Contains(r.Names, module) {
		return true
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(module, p) {
			return true
		}
	}
	return false
}

// IsBinary reports whether path has one of the given binary extensions.
func IsBinary(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
