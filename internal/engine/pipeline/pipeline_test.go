package pipeline_test

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packager/internal/adapters/manifest"
	"go.trai.ch/packager/internal/core/domain"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

func readIndex(t *testing.T, path string) manifest.Index {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var idx manifest.Index
	require.NoError(t, yaml.Unmarshal(data, &idx))
	return idx
}

func zipEntries(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestPipeline_Run_PublishesFeed(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)

	res, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Equal(t, []string{"App", "Core"}, res.Published)
	for _, name := range []string{"App", "Core"} {
		m := findPackage(t, res, name)
		assert.Equal(t, "0.0.0.0", m.Version)
		assert.Equal(t, "0.0.0.0", m.InterfaceVersion)

		assert.FileExists(t, f.feedPath("0.0.0.0", name+".spkg"))
		assert.FileExists(t, f.feedPath("0.0.0.0", "0.0.0.0", name+".spkg"))

		bundle := f.feedPath("0.0.0.0", "0.0.0.0", name+".zip")
		data, err := os.ReadFile(bundle)
		require.NoError(t, err)
		sum := sha256.Sum256(data)
		assert.Equal(t, hex.EncodeToString(sum[:]), m.BundleHash)
	}

	assert.Equal(t, []string{"bin/Core.dll", "data/core.txt"}, zipEntries(t, f.feedPath("0.0.0.0", "0.0.0.0", "Core.zip")))

	core := findPackage(t, res, "Core")
	for path, rec := range core.Files {
		assert.Len(t, rec.Hash, 16, path)
	}

	idx := readIndex(t, f.feedPath("0.0.0.0", "packages.list"))
	assert.Equal(t, "0.0.0.0", idx.InterfaceVersion)
	assert.Equal(t, []manifest.IndexEntry{{Name: "App"}, {Name: "Core"}}, idx.Packages)

	loaded, err := manifest.NewStore().Load(f.feedPath("0.0.0.0", "App.spkg"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Core": ""}, loaded.Dependencies)
	assert.Equal(t, findPackage(t, res, "App").BundleHash, loaded.BundleHash)
}

func TestPipeline_Run_LeavesInputsUntouched(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)

	_, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	for _, m := range manifests {
		assert.Empty(t, m.Version)
		assert.Empty(t, m.BundleHash)
	}
}

func TestPipeline_Run_Deterministic(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	p := f.pipeline()

	first, err := p.Run(context.Background(), manifests, f.options())
	require.NoError(t, err)
	second, err := p.Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	for i := range first.Packages {
		assert.Equal(t, first.Packages[i].BundleHash, second.Packages[i].BundleHash)
	}
}

func TestPipeline_Run_InfersDependencies(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	delete(manifests[0].Dependencies, "Core")

	res, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Core": ""}, findPackage(t, res, "App").Dependencies)
	assert.Empty(t, findPackage(t, res, "Core").Dependencies)
}

func TestPipeline_Run_VersionInjection(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	opts := f.options()
	opts.Policy = &domain.VersionPolicy{Directives: []domain.Directive{
		{Kind: domain.DirectiveInterfaceVersion, Version: "7"},
		{Kind: domain.DirectiveDefaultVersion, Version: "1.0.0"},
	}}

	res, err := f.pipeline().Run(context.Background(), manifests, opts)
	require.NoError(t, err)

	for _, m := range res.Packages {
		assert.Equal(t, "1.0.0", m.Version, m.Name)
		assert.Equal(t, "7", m.InterfaceVersion, m.Name)
	}
	assert.FileExists(t, f.feedPath("7", "1.0.0", "App.zip"))
	assert.FileExists(t, f.feedPath("7", "packages.list"))
}

func TestPipeline_Run_InterfaceVersionOverridesManifest(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	manifests[1].InterfaceVersion = "3"
	opts := f.options()
	opts.Policy = &domain.VersionPolicy{Directives: []domain.Directive{
		{Kind: domain.DirectiveInterfaceVersion, Version: "7"},
		{Kind: domain.DirectiveDefaultVersion, Version: "1.0.0"},
	}}

	res, err := f.pipeline().Verify(context.Background(), manifests, opts)
	require.NoError(t, err)
	assert.Equal(t, "7", findPackage(t, res, "Core").InterfaceVersion)
}

func TestPipeline_Run_ExactMatchPinsDependents(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	opts := f.options()
	opts.Policy = &domain.VersionPolicy{Directives: []domain.Directive{
		{Kind: domain.DirectiveDefaultVersion, Version: "1.0.0"},
		{Kind: domain.DirectivePackage, Name: "Core", Version: "2.3.0", ExactMatch: true},
	}}

	res, err := f.pipeline().Run(context.Background(), manifests, opts)
	require.NoError(t, err)

	assert.Equal(t, "2.3.0", findPackage(t, res, "Core").Version)
	assert.Equal(t, "1.0.0", findPackage(t, res, "App").Version)
	assert.Equal(t, map[string]string{"Core": "2.3.0"}, findPackage(t, res, "App").Dependencies)
}

func TestPipeline_Run_BinaryVersionSource(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	f.inspector.meta["bin/Core.dll"] = &domain.BinaryMetadata{
		ModuleName: "Core",
		Version:    "3.1.0",
		Copyright:  "(c) Acme",
	}
	manifests[1].Files["bin/Core.dll"] = domain.FileRecord{IsVersionSource: true}

	res, err := f.pipeline().Verify(context.Background(), manifests, f.options())
	require.NoError(t, err)

	core := findPackage(t, res, "Core")
	assert.Equal(t, "3.1.0", core.Version)
	assert.Equal(t, "(c) Acme", core.License)
	assert.Equal(t, "3.1.0", core.Files["bin/Core.dll"].Version)
	assert.Equal(t, "0.0.0.0", findPackage(t, res, "App").Version)
}

func TestPipeline_Run_PolicyPackageSources(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	f.inspector.meta["bin/App.exe"].Version = "4.0.1"
	f.binary(t, "tools/Version.dll", &domain.BinaryMetadata{
		ModuleName: "Version",
		Version:    "5.2.0",
		Copyright:  "(c) Tools",
	})
	opts := f.options()
	opts.Policy = &domain.VersionPolicy{Directives: []domain.Directive{
		{Kind: domain.DirectivePackage, Name: "Core", VersionSource: "tools/Version.dll", License: "MIT"},
		{Kind: domain.DirectivePackage, Name: "App", VersionFromPackageFiles: true},
	}}

	res, err := f.pipeline().Verify(context.Background(), manifests, opts)
	require.NoError(t, err)

	core := findPackage(t, res, "Core")
	assert.Equal(t, "5.2.0", core.Version)
	assert.Equal(t, "MIT", core.License)
	assert.Equal(t, "4.0.1", findPackage(t, res, "App").Version)
}

func TestPipeline_Run_SkipAndHide(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	f.write(t, "data/tool.txt", "tool")
	tool := pkg("Tool", "data/tool.txt")
	tool.SkipDelivery = true
	manifests = append(manifests, tool)

	opts := f.options()
	opts.SkipList = domain.NewNameSet("App")
	opts.HideList = domain.NewNameSet("Core")

	res, err := f.pipeline().Run(context.Background(), manifests, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Core"}, res.Published)
	assert.NoFileExists(t, f.feedPath("0.0.0.0", "0.0.0.0", "App.zip"))
	assert.NoFileExists(t, f.feedPath("0.0.0.0", "Tool.spkg"))

	idx := readIndex(t, f.feedPath("0.0.0.0", "packages.list"))
	assert.Equal(t, []manifest.IndexEntry{{Name: "Core", Hidden: true}}, idx.Packages)
}

func TestPipeline_Run_IndexKeepsEarlierPackages(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	p := f.pipeline()

	_, err := p.Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	opts := f.options()
	opts.SkipList = domain.NewNameSet("App")
	_, err = p.Run(context.Background(), manifests, opts)
	require.NoError(t, err)

	idx := readIndex(t, f.feedPath("0.0.0.0", "packages.list"))
	assert.Equal(t, []manifest.IndexEntry{{Name: "App"}, {Name: "Core"}}, idx.Packages)
}

func TestPipeline_Run_IgnoresExcludedFiles(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	f.write(t, "data/settings.ini", "[x]")
	f.write(t, "bin/App.pdb", "symbols")
	f.write(t, "bin/packager.exe", "self")
	f.write(t, "data/.git/HEAD", "ref")

	_, err := f.pipeline().Verify(context.Background(), manifests, f.options())
	require.NoError(t, err)
}

func TestPipeline_Run_AdoptsExcludedFileWhenClaimed(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	f.write(t, "data/core.ini", "[core]")
	manifests[1].Files["data/core.ini"] = domain.FileRecord{}

	_, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Contains(t, zipEntries(t, f.feedPath("0.0.0.0", "0.0.0.0", "Core.zip")), "data/core.ini")
}

func TestPipeline_Run_PartialMode(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	manifests[0].Dependencies["Ghost"] = ""
	f.write(t, "data/stray.txt", "stray")
	f.logger.EXPECT().Warn(gomock.Any()).Times(2)

	opts := f.options()
	opts.Config.Partial = true
	_, err := f.pipeline().Verify(context.Background(), manifests, opts)
	require.NoError(t, err)
}

func TestPipeline_Run_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture, manifests []*domain.PackageManifest) []*domain.PackageManifest
		policy  *domain.VersionPolicy
		stage   error
		finding error
	}{
		{
			name: "duplicate name",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				return append(ms, pkg("Core"))
			},
			stage:   domain.ErrDuplicateManifestName,
			finding: domain.ErrDuplicateManifestName,
		},
		{
			name: "self dependency",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[0].Dependencies["App"] = ""
				return ms
			},
			stage:   domain.ErrDependencyGraph,
			finding: domain.ErrSelfDependency,
		},
		{
			name: "unknown dependency",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[0].Dependencies["Ghost"] = ""
				return ms
			},
			stage:   domain.ErrDependencyGraph,
			finding: domain.ErrUnknownDependency,
		},
		{
			name: "file claimed twice",
			setup: func(t *testing.T, f *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				f.write(t, "data/shared.txt", "shared")
				ms[0].Files["data/shared.txt"] = domain.FileRecord{}
				ms[1].Files["data/shared.txt"] = domain.FileRecord{}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrFileClaimedTwice,
		},
		{
			name: "file claimed twice under another spelling",
			setup: func(t *testing.T, f *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				f.write(t, "data/shared.txt", "shared")
				ms[0].Files["data/shared.txt"] = domain.FileRecord{}
				ms[1].Files["./data/shared.txt"] = domain.FileRecord{}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrFileClaimedTwice,
		},
		{
			name: "file claimed twice with backslashes",
			setup: func(t *testing.T, f *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				f.write(t, "data/shared.txt", "shared")
				ms[0].Files[`data\shared.txt`] = domain.FileRecord{}
				ms[1].Files["data//shared.txt"] = domain.FileRecord{}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrFileClaimedTwice,
		},
		{
			name: "missing file",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[0].Files["data/missing.txt"] = domain.FileRecord{}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrMissingFile,
		},
		{
			name: "file outside root",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[0].Files["../outside.txt"] = domain.FileRecord{}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrMissingFile,
		},
		{
			name: "unreferenced file",
			setup: func(t *testing.T, f *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				f.write(t, "data/stray.txt", "stray")
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrUnreferencedFile,
		},
		{
			name: "missing preload",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[0].PreloadAssemblies = []string{"Loader.dll"}
				return ms
			},
			stage:   domain.ErrFileAccounting,
			finding: domain.ErrMissingPreloadFile,
		},
		{
			name: "unpackaged module",
			setup: func(t *testing.T, f *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				f.inspector.meta["bin/App.exe"].References = []string{"Ghost"}
				return ms
			},
			stage:   domain.ErrBinaryResolution,
			finding: domain.ErrUnpackagedModule,
		},
		{
			name: "missing version",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				return ms
			},
			policy: &domain.VersionPolicy{Directives: []domain.Directive{
				{Kind: domain.DirectivePackage, Name: "Core", Version: "1.0.0"},
			}},
			stage:   domain.ErrVersionResolution,
			finding: domain.ErrMissingVersion,
		},
		{
			name: "package name is not a file name",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				return append(ms, pkg("../Evil"))
			},
			stage:   domain.ErrManifestLoad,
			finding: domain.ErrInvalidPathSegment,
		},
		{
			name: "manifest version escapes the feed",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				ms[1].Version = "../../escaped"
				return ms
			},
			stage:   domain.ErrVersionResolution,
			finding: domain.ErrInvalidPathSegment,
		},
		{
			name: "policy version escapes the feed",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				return ms
			},
			policy: &domain.VersionPolicy{Directives: []domain.Directive{
				{Kind: domain.DirectiveInterfaceVersion, Version: ".."},
				{Kind: domain.DirectiveDefaultVersion, Version: "1.0.0"},
			}},
			stage:   domain.ErrVersionResolution,
			finding: domain.ErrInvalidPathSegment,
		},
		{
			name: "unknown policy package",
			setup: func(_ *testing.T, _ *fixture, ms []*domain.PackageManifest) []*domain.PackageManifest {
				return ms
			},
			policy: &domain.VersionPolicy{Directives: []domain.Directive{
				{Kind: domain.DirectiveDefaultVersion, Version: "1.0.0"},
				{Kind: domain.DirectivePackage, Name: "Ghost", Version: "1.0.0"},
			}},
			stage:   domain.ErrVersionResolution,
			finding: domain.ErrUnknownPolicyPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			manifests := tt.setup(t, f, f.coreApp(t))
			opts := f.options()
			opts.Policy = tt.policy

			res, err := f.pipeline().Run(context.Background(), manifests, opts)
			require.Error(t, err)
			assert.Nil(t, res)
			require.ErrorIs(t, err, tt.stage)
			require.ErrorIs(t, err, tt.finding)
			assert.NoDirExists(t, f.cfg.FeedDir)
			assert.NoDirExists(t, filepath.Join(f.root, "escaped"))
		})
	}
}

func TestPipeline_Run_CanonicalFilePaths(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	delete(manifests[1].Files, "data/core.txt")
	manifests[1].Files["./data/../data/core.txt"] = domain.FileRecord{}

	res, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Equal(t, []string{"bin/Core.dll", "data/core.txt"}, slices.Sorted(maps.Keys(findPackage(t, res, "Core").Files)))
	assert.Equal(t, []string{"bin/Core.dll", "data/core.txt"}, zipEntries(t, f.feedPath("0.0.0.0", "0.0.0.0", "Core.zip")))
	assert.Contains(t, manifests[1].Files, "./data/../data/core.txt")
}

func TestPipeline_Run_SkipDeliveryNeedsNoVersion(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	manifests[0].SkipDelivery = true
	opts := f.options()
	opts.Policy = &domain.VersionPolicy{Directives: []domain.Directive{
		{Kind: domain.DirectivePackage, Name: "Core", Version: "1.0.0"},
	}}

	res, err := f.pipeline().Run(context.Background(), manifests, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Core"}, res.Published)
	assert.Equal(t, "0.0.0.0", findPackage(t, res, "App").Version)
}

func TestPipeline_Verify_WritesNothing(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)

	res, err := f.pipeline().Verify(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Empty(t, res.Published)
	assert.Len(t, res.Packages, 2)
	assert.NoDirExists(t, f.cfg.FeedDir)
}

func TestPipeline_Run_CanceledContext(t *testing.T) {
	f := newFixture(t)
	manifests := f.coreApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline().Run(ctx, manifests, f.options())
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Run_InferredDependencyScenario(t *testing.T) {
	f := newFixture(t)
	f.binary(t, "bin/Core.dll", &domain.BinaryMetadata{ModuleName: "Core"})
	f.binary(t, "bin/App.dll", &domain.BinaryMetadata{ModuleName: "App", References: []string{"Core"}})
	manifests := []*domain.PackageManifest{pkg("Core", "bin/Core.dll"), pkg("App", "bin/App.dll")}

	res, err := f.pipeline().Run(context.Background(), manifests, f.options())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Core": ""}, findPackage(t, res, "App").Dependencies)

	var descriptors, bundles int
	require.NoError(t, filepath.WalkDir(f.cfg.FeedDir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch filepath.Ext(path) {
		case domain.DescriptorExt:
			descriptors++
		case domain.BundleExt:
			bundles++
		}
		return nil
	}))
	assert.Equal(t, 4, descriptors)
	assert.Equal(t, 2, bundles)

	idx := readIndex(t, f.feedPath("0.0.0.0", "packages.list"))
	assert.Equal(t, []manifest.IndexEntry{{Name: "App"}, {Name: "Core"}}, idx.Packages)
}
