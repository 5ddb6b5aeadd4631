// Package manifest reads and writes package descriptors and feed indexes as YAML.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/packager/internal/adapters/fs"
	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// LoadDir decodes every top-level descriptor in dir, ordered by file name.
// A missing directory yields no manifests.
func (s *Store) LoadDir(dir string) ([]*domain.PackageManifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestLoad, err), "path", dir)
	}

	var manifests []*domain.PackageManifest
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), domain.DescriptorExt) {
			continue
		}
		m, err := s.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

// Load decodes a single descriptor.
func (s *Store) Load(path string) (*domain.PackageManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestLoad, err), "path", path)
	}

	var d Descriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestLoad, err), "path", path)
	}
	if d.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestLoad, "descriptor has no name"), "path", path)
	}
	if !domain.IsPathSegment(d.Name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestLoad, "descriptor name is not a valid file name"), "path", path)
	}

	return toDomain(&d), nil
}

// Write serializes the manifest to path atomically.
func (s *Store) Write(path string, m *domain.PackageManifest) error {
	return writeYAML(path, fromDomain(m))
}

// WriteIndex serializes the feed index to path atomically.
func (s *Store) WriteIndex(path string, index *domain.FeedIndex) error {
	out := Index{
		InterfaceVersion: index.InterfaceVersion,
		Packages:         make([]IndexEntry, 0, len(index.Entries)),
	}
	for _, e := range index.Entries {
		out.Packages = append(out.Packages, IndexEntry{Name: e.Name, Hidden: e.Hidden})
	}
	return writeYAML(path, &out)
}

func writeYAML(path string, v any) error {
	err := fs.WriteFileAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return zerr.Wrap(err, "failed to encode YAML")
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return nil
}

func toDomain(d *Descriptor) *domain.PackageManifest {
	m := &domain.PackageManifest{
		Name:              d.Name,
		Version:           d.Version,
		InterfaceVersion:  d.InterfaceVersion,
		License:           d.License,
		SkipDelivery:      d.SkipDelivery,
		BundleHash:        d.BundleHash,
		Dependencies:      make(map[string]string, len(d.Dependencies)),
		Files:             make(map[string]domain.FileRecord, len(d.Files)),
		PreloadAssemblies: d.PreloadAssemblies,
	}
	for name, pin := range d.Dependencies {
		m.Dependencies[name] = pin
	}
	for p, f := range d.Files {
		m.Files[domain.CleanPath(p)] = domain.FileRecord{
			Hash:            f.Hash,
			Version:         f.Version,
			IsVersionSource: f.VersionSource,
		}
	}
	for _, c := range d.DefaultConfigurations {
		m.DefaultConfigurations = append(m.DefaultConfigurations, domain.Configuration{Name: c.Name, Content: c.Content})
	}
	return m
}

func fromDomain(m *domain.PackageManifest) *Descriptor {
	d := &Descriptor{
		Name:              m.Name,
		Version:           m.Version,
		InterfaceVersion:  m.InterfaceVersion,
		License:           m.License,
		SkipDelivery:      m.SkipDelivery,
		BundleHash:        m.BundleHash,
		Dependencies:      m.Dependencies,
		PreloadAssemblies: m.PreloadAssemblies,
	}
	if len(m.Files) > 0 {
		d.Files = make(map[string]FileDTO, len(m.Files))
		for p, f := range m.Files {
			d.Files[p] = FileDTO{Hash: f.Hash, Version: f.Version, VersionSource: f.IsVersionSource}
		}
	}
	for _, c := range m.DefaultConfigurations {
		d.DefaultConfigurations = append(d.DefaultConfigurations, ConfigurationDTO{Name: c.Name, Content: c.Content})
	}
	return d
}
