package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteFileAtomic writes a file by streaming into a temp file in the same
// directory and replacing path with it once complete.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", path)
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmpFile); err != nil {
		_ = tmpFile.Close()
		return zerr.With(err, "path", path)
	}

	if err := tmpFile.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temp file"), "path", path)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set permissions"), "path", path)
	}

	return ReplaceFile(tmpName, path)
}

// ReplaceFile deletes dst if it exists and renames src onto it.
func ReplaceFile(src, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove previous file"), "path", dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rename temp file"), "path", dst)
	}
	return nil
}
