package domain

import "go.trai.ch/zerr"

// Stage-level error kinds. A failed stage returns an error that matches exactly one of these.
var (
	// ErrManifestLoad is returned when a package descriptor cannot be read or decoded.
	ErrManifestLoad = zerr.New("failed to load package manifest")

	// ErrDuplicateManifestName is returned when two descriptors declare the same package name.
	ErrDuplicateManifestName = zerr.New("duplicate package name")

	// ErrDependencyGraph is returned when declared dependencies are inconsistent.
	ErrDependencyGraph = zerr.New("dependency graph validation failed")

	// ErrFileAccounting is returned when the file inventory does not reconcile with the manifests.
	ErrFileAccounting = zerr.New("file accounting failed")

	// ErrBinaryResolution is returned when a packaged binary references a module no package provides.
	ErrBinaryResolution = zerr.New("binary reference resolution failed")

	// ErrVersionResolution is returned when a package is left without a version.
	ErrVersionResolution = zerr.New("version resolution failed")

	// ErrIO is returned when an input cannot be read or an artifact or descriptor cannot be written.
	ErrIO = zerr.New("i/o failure")
)

// Individual findings, wrapped with the subject they concern.
var (
	// ErrUnknownDependency is recorded when a dependency names no known package.
	ErrUnknownDependency = zerr.New("unknown dependency")

	// ErrSelfDependency is recorded when a package depends on itself.
	ErrSelfDependency = zerr.New("self dependency")

	// ErrMissingFile is recorded when a manifest references a file that does not exist.
	ErrMissingFile = zerr.New("missing file")

	// ErrFileClaimedTwice is recorded when two manifests reference the same file.
	ErrFileClaimedTwice = zerr.New("file claimed by more than one package")

	// ErrUnreferencedFile is recorded when an installed file belongs to no package.
	ErrUnreferencedFile = zerr.New("unreferenced file")

	// ErrMissingPreloadFile is recorded when a preload assembly is not part of the package.
	ErrMissingPreloadFile = zerr.New("missing preload file")

	// ErrUnpackagedModule is returned when a referenced module is not owned by any package.
	ErrUnpackagedModule = zerr.New("referenced module is not packaged")

	// ErrMissingVersion is recorded when a deliverable package has no version.
	ErrMissingVersion = zerr.New("missing version")

	// ErrInvalidPathSegment is recorded when a package name or version cannot name a feed entry.
	ErrInvalidPathSegment = zerr.New("invalid feed path segment")

	// ErrUnknownPolicyPackage is recorded when a policy directive names no known package.
	ErrUnknownPolicyPackage = zerr.New("policy references unknown package")

	// ErrInvalidPolicy is returned when a policy document cannot be decoded.
	ErrInvalidPolicy = zerr.New("invalid version policy")

	// ErrInspectionFailed is returned by inspectors that cannot read a binary.
	ErrInspectionFailed = zerr.New("binary inspection failed")

	// ErrConfigLoad is returned when the configuration file cannot be read.
	ErrConfigLoad = zerr.New("failed to load configuration")
)
