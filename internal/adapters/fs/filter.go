package fs

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// DefaultExcludes are the patterns never considered part of a package.
var DefaultExcludes = []string{
	"*.ini",
	"*.config",
	"*.exe.config",
	"*.pdb",
	"*.mdb",
	"*.log",
	"*.vshost.*",
	"*.spkg",
	"*.tmp",
	"*.bak",
	"*.orig",
	"*.swp",
	"Thumbs.db",
}

// Filter decides which root-relative paths are excluded from the inventory.
// Patterns without a slash match the base name; patterns with one match the whole path.
type Filter struct {
	patterns []string
}

// NewFilter combines DefaultExcludes with extra patterns.
func NewFilter(extra []string) (*Filter, error) {
	patterns := make([]string, 0, len(DefaultExcludes)+len(extra))
	patterns = append(patterns, DefaultExcludes...)
	for _, p := range extra {
		if !doublestar.ValidatePattern(p) {
			return nil, zerr.With(zerr.New("invalid exclude pattern"), "pattern", p)
		}
		patterns = append(patterns, p)
	}
	return &Filter{patterns: patterns}, nil
}

// Excluded reports whether rel must be left out of the inventory.
func (f *Filter) Excluded(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}

	base := path.Base(rel)
	for _, p := range f.patterns {
		target := base
		if strings.Contains(p, "/") {
			target = rel
		}
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}
