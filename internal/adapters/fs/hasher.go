package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes file and bundle digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (string, error) {
	d := xxhash.New()
	if err := streamInto(d, path); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}

// ComputeBundleHash computes the SHA-256 of a bundle, hex encoded.
func (h *Hasher) ComputeBundleHash(path string) (string, error) {
	d := sha256.New()
	if err := streamInto(d, path); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

func streamInto(d hash.Hash, path string) error {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(d, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return nil
}
