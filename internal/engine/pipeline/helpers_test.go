package pipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/packager/internal/adapters/archive"
	"go.trai.ch/packager/internal/adapters/fs"
	"go.trai.ch/packager/internal/adapters/manifest"
	"go.trai.ch/packager/internal/adapters/telemetry"
	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/packager/internal/core/ports/mocks"
	"go.trai.ch/packager/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// stubInspector serves binary metadata keyed by root-relative path.
type stubInspector struct {
	root string
	meta map[string]*domain.BinaryMetadata
}

func (s *stubInspector) Inspect(path string) (*domain.BinaryMetadata, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return nil, err
	}
	if m, ok := s.meta[filepath.ToSlash(rel)]; ok {
		return m, nil
	}
	return nil, errors.New("not a binary")
}

type fixture struct {
	root      string
	cfg       domain.Config
	inspector *stubInspector
	logger    *mocks.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Root = root
	cfg.FeedDir = filepath.Join(root, "feed")
	cfg.Jobs = 2

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	return &fixture{
		root:      root,
		cfg:       cfg,
		inspector: &stubInspector{root: root, meta: make(map[string]*domain.BinaryMetadata)},
		logger:    log,
	}
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) binary(t *testing.T, rel string, meta *domain.BinaryMetadata) {
	t.Helper()
	f.write(t, rel, "binary "+meta.ModuleName)
	f.inspector.meta[rel] = meta
}

func (f *fixture) pipeline() *pipeline.Pipeline {
	return pipeline.New(
		fs.NewScanner(fs.NewWalker()),
		f.inspector,
		fs.NewHasher(),
		archive.NewZipArchiver(),
		manifest.NewStore(),
		telemetry.NewNoOp(),
		f.logger,
	)
}

func (f *fixture) options() pipeline.Options {
	return pipeline.Options{Config: f.cfg}
}

func (f *fixture) feedPath(parts ...string) string {
	return filepath.Join(append([]string{f.cfg.FeedDir}, parts...)...)
}

// coreApp lays out the two-package tree used by most scenarios.
func (f *fixture) coreApp(t *testing.T) []*domain.PackageManifest {
	t.Helper()
	f.write(t, "data/core.txt", "core data")
	f.binary(t, "bin/Core.dll", &domain.BinaryMetadata{ModuleName: "Core"})
	f.binary(t, "bin/App.exe", &domain.BinaryMetadata{
		ModuleName: "App",
		References: []string{"Core", "System.Xml", "mscorlib"},
	})

	core := pkg("Core", "bin/Core.dll", "data/core.txt")
	app := pkg("App", "bin/App.exe")
	app.Dependencies["Core"] = ""
	return []*domain.PackageManifest{app, core}
}

func pkg(name string, files ...string) *domain.PackageManifest {
	m := &domain.PackageManifest{
		Name:         name,
		Dependencies: map[string]string{},
		Files:        map[string]domain.FileRecord{},
	}
	for _, file := range files {
		m.Files[file] = domain.FileRecord{}
	}
	return m
}

func findPackage(t *testing.T, res *pipeline.Result, name string) *domain.PackageManifest {
	t.Helper()
	for _, m := range res.Packages {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("package %q not in result", name)
	return nil
}

var _ ports.BinaryInspector = (*stubInspector)(nil)
