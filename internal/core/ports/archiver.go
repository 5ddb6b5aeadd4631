package ports

// Archiver builds package bundles.
//
//go:generate mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Archive writes the root-relative files into a bundle at dest, replacing any existing one.
	Archive(root string, files []string, dest string) error
}
