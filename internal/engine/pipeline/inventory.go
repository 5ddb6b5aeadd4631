package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
)

// ReconcileInventory matches the files on disk against the files every manifest claims.
// A claimed file missing from the scan is adopted when it exists on disk.
func (r *Run) ReconcileInventory(_ context.Context, v ports.Vertex) error {
	cfg := r.opts.Config
	paths, err := r.p.scanner.Scan(cfg.Root, []string{cfg.DataDir, cfg.BinDir}, cfg.ExcludePatterns())
	if err != nil {
		return err
	}
	inv := domain.NewFileInventory(paths)

	findings := domain.NewFindings(domain.ErrFileAccounting)
	for _, m := range r.manifests {
		for _, file := range m.SortedFiles() {
			if !filepath.IsLocal(filepath.FromSlash(file)) {
				findings.Add(domain.ErrMissingFile,
					fmt.Sprintf("package %q references %q outside the root", m.Name, file),
					"package", m.Name, "file", file)
				continue
			}
			if !inv.Contains(file) && r.p.scanner.Exists(cfg.Root, file) {
				inv.Adopt(file)
				v.Log(fmt.Sprintf("adopted %s", file))
			}
			err := inv.Claim(file, m.Name)
			switch {
			case errors.Is(err, domain.ErrMissingFile):
				findings.Add(domain.ErrMissingFile,
					fmt.Sprintf("package %q references %q", m.Name, file),
					"package", m.Name, "file", file)
			case errors.Is(err, domain.ErrFileClaimedTwice):
				owner, _ := inv.Owner(file)
				findings.Add(domain.ErrFileClaimedTwice,
					fmt.Sprintf("%q is claimed by %q and %q", file, owner, m.Name),
					"file", file)
			}
		}
		for _, asm := range m.PreloadAssemblies {
			preload := domain.PreloadPath(asm)
			if _, ok := m.Files[preload]; !ok {
				findings.Add(domain.ErrMissingPreloadFile,
					fmt.Sprintf("package %q preloads %q", m.Name, preload),
					"package", m.Name, "file", preload)
			}
		}
	}

	for _, file := range inv.Unclaimed() {
		if cfg.Partial {
			r.p.logger.Warn(fmt.Sprintf("file %q is not referenced by any package", file))
			continue
		}
		findings.Add(domain.ErrUnreferencedFile, fmt.Sprintf("%q is not referenced by any package", file), "file", file)
	}

	if err := findings.Err(); err != nil {
		return err
	}
	r.inventory = inv
	v.Log(fmt.Sprintf("%d files accounted for", len(inv.Claimed())))
	return nil
}
