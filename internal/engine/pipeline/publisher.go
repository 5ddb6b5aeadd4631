package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

// PublishFeed writes the latest and pinned descriptors of every built package and
// regenerates the index of each affected interface version.
func (r *Run) PublishFeed(_ context.Context, v ports.Vertex) error {
	feed := r.opts.Config.FeedDir
	var interfaces []string
	for _, name := range r.published {
		b := r.builds[name]
		m := b.Manifest()
		iv := b.InterfaceVersion()

		for _, path := range []string{
			domain.LatestDescriptorPath(feed, iv, name),
			domain.PinnedDescriptorPath(feed, iv, b.Version(), name),
		} {
			if err := r.p.store.Write(path, m); err != nil {
				return zerr.With(err, "package", name)
			}
		}
		if !slices.Contains(interfaces, iv) {
			interfaces = append(interfaces, iv)
		}
	}

	slices.Sort(interfaces)
	for _, iv := range interfaces {
		index, err := r.buildIndex(iv)
		if err != nil {
			return err
		}
		if err := r.p.store.WriteIndex(domain.FeedIndexPath(feed, iv), index); err != nil {
			return zerr.With(err, "interface_version", iv)
		}
		v.Log(fmt.Sprintf("indexed %d packages for interface %s", len(index.Entries), iv))
	}
	return nil
}

// buildIndex lists the latest descriptors present in the feed directory of one interface version.
func (r *Run) buildIndex(iv string) (*domain.FeedIndex, error) {
	manifests, err := r.p.store.LoadDir(filepath.Join(r.opts.Config.FeedDir, iv))
	if err != nil {
		return nil, zerr.With(err, "interface_version", iv)
	}

	index := &domain.FeedIndex{InterfaceVersion: iv}
	for _, m := range manifests {
		if slices.ContainsFunc(index.Entries, func(e domain.FeedEntry) bool { return e.Name == m.Name }) {
			continue
		}
		index.Entries = append(index.Entries, domain.FeedEntry{
			Name:   m.Name,
			Hidden: r.opts.HideList.Has(m.Name),
		})
	}
	slices.SortFunc(index.Entries, func(a, b domain.FeedEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return index, nil
}
