package ports

import "go.trai.ch/packager/internal/core/domain"

// ManifestStore reads and writes package descriptors and feed indexes.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// LoadDir decodes every descriptor directly inside dir, ordered by file name.
	LoadDir(dir string) ([]*domain.PackageManifest, error)
	// Write serializes the manifest to path atomically.
	Write(path string, manifest *domain.PackageManifest) error
	// WriteIndex serializes the feed index to path atomically.
	WriteIndex(path string, index *domain.FeedIndex) error
}
