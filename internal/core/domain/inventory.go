package domain

import (
	"maps"
	"slices"
)

// FileInventory tracks installed files and which package claimed them.
// Paths are root-relative and use forward slashes.
type FileInventory struct {
	existing  map[string]struct{}
	available map[string]struct{}
	owners    map[string]string
}

// NewFileInventory creates an inventory where every path is existing and available.
func NewFileInventory(paths []string) *FileInventory {
	inv := &FileInventory{
		existing:  make(map[string]struct{}, len(paths)),
		available: make(map[string]struct{}, len(paths)),
		owners:    make(map[string]string),
	}
	for _, p := range paths {
		inv.existing[p] = struct{}{}
		inv.available[p] = struct{}{}
	}
	return inv
}

// Contains reports whether the path is part of the inventory.
func (i *FileInventory) Contains(path string) bool {
	_, ok := i.existing[path]
	return ok
}

// Adopt adds a path found outside the walk to the inventory.
func (i *FileInventory) Adopt(path string) {
	if i.Contains(path) {
		return
	}
	i.existing[path] = struct{}{}
	i.available[path] = struct{}{}
}

// Claim moves a path from available to claimed by owner.
// It returns ErrMissingFile if the path is not in the inventory
// and ErrFileClaimedTwice if another package already claimed it.
func (i *FileInventory) Claim(path, owner string) error {
	if !i.Contains(path) {
		return ErrMissingFile
	}
	if _, ok := i.available[path]; !ok {
		return ErrFileClaimedTwice
	}
	delete(i.available, path)
	i.owners[path] = owner
	return nil
}

// Owner returns the package that claimed the path.
func (i *FileInventory) Owner(path string) (string, bool) {
	o, ok := i.owners[path]
	return o, ok
}

// Claimed returns the claimed paths in lexical order.
func (i *FileInventory) Claimed() []string {
	return slices.Sorted(maps.Keys(i.owners))
}

// Unclaimed returns the paths no package claimed, in lexical order.
func (i *FileInventory) Unclaimed() []string {
	return slices.Sorted(maps.Keys(i.available))
}

// Existing returns every inventory path in lexical order.
func (i *FileInventory) Existing() []string {
	return slices.Sorted(maps.Keys(i.existing))
}
