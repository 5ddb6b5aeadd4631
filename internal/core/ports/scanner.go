package ports

// TreeScanner lists the installed files below a root.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type TreeScanner interface {
	// Scan walks each dir below root and returns root-relative, slash-separated paths
	// that do not match any exclusion pattern. Missing dirs are skipped.
	Scan(root string, dirs, exclude []string) ([]string, error)
	// Exists reports whether the root-relative path is a regular file.
	Exists(root, rel string) bool
}
