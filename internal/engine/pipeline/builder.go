package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildPackages writes a bundle for every deliverable package and records its digest.
func (r *Run) BuildPackages(_ context.Context, v ports.Vertex) error {
	cfg := r.opts.Config
	r.published = r.published[:0]
	for _, name := range r.builds.Names() {
		b := r.builds[name]
		if b.SkipDelivery() || r.opts.SkipList.Has(name) {
			v.Log(fmt.Sprintf("skipped %s", name))
			continue
		}

		dest := domain.BundlePath(cfg.FeedDir, b.InterfaceVersion(), b.Version(), name)
		if err := r.p.archiver.Archive(cfg.Root, b.Files(), dest); err != nil {
			return zerr.With(err, "package", name)
		}
		hash, err := r.p.hasher.ComputeBundleHash(dest)
		if err != nil {
			return zerr.With(fmt.Errorf("%w: %w", domain.ErrIO, err), "package", name)
		}
		b.SetBundleHash(hash)

		r.published = append(r.published, name)
		r.p.logger.Info(fmt.Sprintf("Built %s %s", name, b.Version()))
	}
	return nil
}
