// Package fs provides file system adapters for walking, filtering, hashing and atomic writes.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below dir as a path relative to root,
// using forward slashes. Dot-prefixed directories are not descended into.
func (w *Walker) WalkFiles(root, dir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", err) {
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				if !yield("", relErr) {
					return filepath.SkipAll
				}
				return nil
			}

			if !yield(filepath.ToSlash(rel), nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
