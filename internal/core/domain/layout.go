package domain

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	// DescriptorExt is the file extension of package descriptors.
	DescriptorExt = ".spkg"

	// BundleExt is the file extension of package bundles.
	BundleExt = ".zip"

	// FeedIndexName is the name of the per interface version feed index.
	FeedIndexName = "packages.list"

	// ConfigFileName is the name of the optional configuration file in the root.
	ConfigFileName = "packager.yaml"

	// BinPrefix is the relative directory preload assemblies live under.
	BinPrefix = "bin/"

	// DefaultVersion is assigned to packages that end up without a version.
	DefaultVersion = "0.0.0.0"

	// DefaultInterfaceVersion is the interface version used when the policy sets none.
	DefaultInterfaceVersion = "0.0.0.0"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission recorded for binaries inside bundles (rwxr-xr-x).
	ExecPerm = 0o755
)

// LatestDescriptorPath returns feed/{iv}/{name}.spkg below feedDir.
func LatestDescriptorPath(feedDir, interfaceVersion, name string) string {
	return filepath.Join(feedDir, interfaceVersion, name+DescriptorExt)
}

// PinnedDescriptorPath returns feed/{iv}/{version}/{name}.spkg below feedDir.
func PinnedDescriptorPath(feedDir, interfaceVersion, version, name string) string {
	return filepath.Join(feedDir, interfaceVersion, version, name+DescriptorExt)
}

// BundlePath returns feed/{iv}/{version}/{name}.zip below feedDir.
func BundlePath(feedDir, interfaceVersion, version, name string) string {
	return filepath.Join(feedDir, interfaceVersion, version, name+BundleExt)
}

// FeedIndexPath returns feed/{iv}/packages.list below feedDir.
func FeedIndexPath(feedDir, interfaceVersion string) string {
	return filepath.Join(feedDir, interfaceVersion, FeedIndexName)
}

// PreloadPath returns the manifest-relative path of a preload assembly.
func PreloadPath(assembly string) string {
	return path.Join(BinPrefix, assembly)
}

// CleanPath returns the canonical slash-separated form of a manifest file path.
func CleanPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// IsPathSegment reports whether s can be used as a single directory or file name
// component below the feed directory.
func IsPathSegment(s string) bool {
	return s != "" && s != "." && !strings.ContainsAny(s, `/\`) && filepath.IsLocal(s)
}
