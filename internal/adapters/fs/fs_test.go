package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/packager/internal/adapters/fs"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bin/a.dll", "a")
	writeFile(t, root, "bin/sub/b.dll", "b")
	writeFile(t, root, "bin/.cache/c.dll", "c")

	var files []string
	for rel, err := range fs.NewWalker().WalkFiles(root, filepath.Join(root, "bin")) {
		require.NoError(t, err)
		files = append(files, rel)
	}

	assert.ElementsMatch(t, []string{"bin/a.dll", "bin/sub/b.dll"}, files)
}

func TestFilter_Excluded(t *testing.T) {
	filter, err := fs.NewFilter([]string{"packager", "packager.exe", "data/cache/**"})
	require.NoError(t, err)

	excluded := []string{
		"bin/SilverSim.ini",
		"bin/App.exe.config",
		"bin/Core.dll.config",
		"bin/Core.pdb",
		"bin/Core.dll.mdb",
		"data/server.log",
		"bin/App.vshost.exe",
		"bin/Core.spkg",
		"bin/.hidden",
		"data/.git/config",
		"bin/packager",
		"bin/packager.exe",
		"data/cache/x/y.bin",
		"bin/old.dll.bak",
	}
	for _, p := range excluded {
		assert.True(t, filter.Excluded(p), p)
	}

	included := []string{
		"bin/Core.dll",
		"bin/App.exe",
		"data/assets/texture.j2k",
		"data/cachefile.bin",
		"data/configuration.xml",
	}
	for _, p := range included {
		assert.False(t, filter.Excluded(p), p)
	}
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	_, err := fs.NewFilter([]string{"bin/[a"})
	require.Error(t, err)
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bin/Core.dll", "core")
	writeFile(t, root, "bin/Core.pdb", "symbols")
	writeFile(t, root, "data/assets/a.txt", "a")
	writeFile(t, root, "data/.DS_Store", "x")
	writeFile(t, root, "other/outside.txt", "o")

	scanner := fs.NewScanner(fs.NewWalker())
	files, err := scanner.Scan(root, []string{"data", "bin", "missing"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"bin/Core.dll", "data/assets/a.txt"}, files)
	assert.True(t, scanner.Exists(root, "other/outside.txt"))
	assert.False(t, scanner.Exists(root, "other"))
	assert.False(t, scanner.Exists(root, "other/nope.txt"))
}

func TestHasher(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty", "")
	writeFile(t, root, "bundle", "bundle-content")
	writeFile(t, root, "copy", "bundle-content")

	h := fs.NewHasher()

	t.Run("file hash is xxhash64 hex", func(t *testing.T) {
		got, err := h.ComputeFileHash(filepath.Join(root, "empty"))
		require.NoError(t, err)
		assert.Equal(t, "ef46db3751d8e999", got)
	})

	t.Run("same bytes give same digest", func(t *testing.T) {
		a, err := h.ComputeFileHash(filepath.Join(root, "bundle"))
		require.NoError(t, err)
		b, err := h.ComputeFileHash(filepath.Join(root, "copy"))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("bundle hash is sha256 hex", func(t *testing.T) {
		got, err := h.ComputeBundleHash(filepath.Join(root, "bundle"))
		require.NoError(t, err)
		assert.Equal(t, "17cc744c34dd53bc69277fd7b622b0e1c99d9157e0714d1afffc8264893b2ea3", got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := h.ComputeFileHash(filepath.Join(root, "nope"))
		require.Error(t, err)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "feed", "7", "Core.spkg")

	require.NoError(t, fs.WriteFileAtomic(target, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	}))
	require.NoError(t, fs.WriteFileAtomic(target, func(w io.Writer) error {
		_, err := w.Write([]byte("second"))
		return err
	}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	failing := fs.WriteFileAtomic(target, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("disk full")
	})
	require.Error(t, failing)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data), "failed write must leave the previous file intact")

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}
