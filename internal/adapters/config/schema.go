package config

// File represents the structure of the packager.yaml configuration file.
type File struct {
	PackagesDir      string   `mapstructure:"packages-dir"`
	DataDir          string   `mapstructure:"data-dir"`
	BinDir           string   `mapstructure:"bin-dir"`
	FeedDir          string   `mapstructure:"feed-dir"`
	VersionInjection string   `mapstructure:"version-injection"`
	SkipList         string   `mapstructure:"skip-list"`
	HideList         string   `mapstructure:"hide-list"`
	Executable       string   `mapstructure:"executable"`
	Exclude          []string `mapstructure:"exclude"`
	BinaryExtensions []string `mapstructure:"binary-extensions"`
	RuntimePrefixes  []string `mapstructure:"runtime-prefixes"`
	RuntimeModules   []string `mapstructure:"runtime-modules"`
	Partial          bool     `mapstructure:"partial"`
	Jobs             int      `mapstructure:"jobs"`
}
