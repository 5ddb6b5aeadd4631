package ports

// Hasher computes content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash streams the file at path and returns its content digest.
	ComputeFileHash(path string) (string, error)
	// ComputeBundleHash returns the digest recorded for a finished bundle.
	ComputeBundleHash(path string) (string, error)
}
