package domain

import "runtime"

// Config holds the settings of a packaging run.
// DataDir and BinDir are walk roots relative to Root; the other paths are resolved by the loader.
type Config struct {
	Root             string
	PackagesDir      string
	DataDir          string
	BinDir           string
	FeedDir          string
	VersionInjection string
	SkipList         string
	HideList         string
	Executable       string
	Exclude          []string
	BinaryExtensions []string
	Runtime          RuntimeModules
	Partial          bool
	Jobs             int
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Root:             ".",
		PackagesDir:      "installed-packages",
		DataDir:          "data",
		BinDir:           "bin",
		FeedDir:          "feed",
		VersionInjection: "version-injection.xml",
		SkipList:         "skip-packages.xml",
		HideList:         "hidden-packages.xml",
		Executable:       "packager",
		BinaryExtensions: []string{".dll", ".exe", ".so"},
		Runtime:          DefaultRuntimeModules(),
		Jobs:             runtime.NumCPU(),
	}
}

// ExcludePatterns returns the configured exclusions plus the tool's own executable.
func (c Config) ExcludePatterns() []string {
	out := make([]string, 0, len(c.Exclude)+2)
	out = append(out, c.Exclude...)
	if c.Executable != "" {
		out = append(out, c.Executable, c.Executable+".exe")
	}
	return out
}
