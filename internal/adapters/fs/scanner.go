package fs

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeScanner = (*Scanner)(nil)

// Scanner lists installed files with the exclusion filter applied.
type Scanner struct {
	walker *Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan walks each dir below root and returns the sorted, filtered relative paths.
func (s *Scanner) Scan(root string, dirs, exclude []string) ([]string, error) {
	filter, err := NewFilter(exclude)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, dir := range dirs {
		abs := filepath.Join(root, dir)
		if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
			continue
		}
		for rel, err := range s.walker.WalkFiles(root, abs) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", abs)
			}
			if filter.Excluded(rel) {
				continue
			}
			out = append(out, rel)
		}
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

// Exists reports whether rel names a regular file below root.
func (s *Scanner) Exists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}
