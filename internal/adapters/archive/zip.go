// Package archive builds deterministic zip bundles.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/packager/internal/adapters/fs"
	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*ZipArchiver)(nil)

// epoch is stamped on every entry so identical inputs give identical bytes.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ZipArchiver implements ports.Archiver.
type ZipArchiver struct{}

// NewZipArchiver creates a new ZipArchiver.
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

// Archive writes files, sorted by path, into a zip at dest.
// The bundle is streamed into a temp file and swapped in only when complete.
func (a *ZipArchiver) Archive(root string, files []string, dest string) error {
	sorted := slices.Clone(files)
	slices.Sort(sorted)

	err := fs.WriteFileAtomic(dest, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, rel := range sorted {
			if err := addFile(zw, root, rel); err != nil {
				_ = zw.Close()
				return err
			}
		}
		if err := zw.Close(); err != nil {
			return zerr.Wrap(err, "failed to finalize archive")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return nil
}

func addFile(zw *zip.Writer, root, rel string) error {
	src := filepath.Join(root, filepath.FromSlash(rel))
	f, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", src)
	}

	hdr := &zip.FileHeader{
		Name:     rel,
		Method:   zip.Deflate,
		Modified: epoch,
	}
	mode := os.FileMode(domain.FilePerm)
	if info.Mode().Perm()&0o111 != 0 {
		mode = domain.ExecPerm
	}
	hdr.SetMode(mode)

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add archive entry"), "entry", rel)
	}
	if _, err := io.Copy(w, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive entry"), "entry", rel)
	}
	return nil
}
