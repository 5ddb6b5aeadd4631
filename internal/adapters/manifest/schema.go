package manifest

// Descriptor represents the structure of a .spkg package descriptor.
type Descriptor struct {
	Name                  string             `yaml:"name"`
	Version               string             `yaml:"version,omitempty"`
	InterfaceVersion      string             `yaml:"interface-version,omitempty"`
	License               string             `yaml:"license,omitempty"`
	SkipDelivery          bool               `yaml:"skip-delivery,omitempty"`
	BundleHash            string             `yaml:"bundle-hash,omitempty"`
	Dependencies          map[string]string  `yaml:"dependencies,omitempty"`
	Files                 map[string]FileDTO `yaml:"files,omitempty"`
	PreloadAssemblies     []string           `yaml:"preload-assemblies,omitempty"`
	DefaultConfigurations []ConfigurationDTO `yaml:"default-configurations,omitempty"`
}

// FileDTO represents one file entry of a descriptor.
type FileDTO struct {
	Hash          string `yaml:"hash,omitempty"`
	Version       string `yaml:"version,omitempty"`
	VersionSource bool   `yaml:"version-source,omitempty"`
}

// ConfigurationDTO represents a default configuration shipped with a package.
type ConfigurationDTO struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// Index represents the structure of a packages.list feed index.
type Index struct {
	InterfaceVersion string       `yaml:"interface-version"`
	Packages         []IndexEntry `yaml:"packages"`
}

// IndexEntry represents one package in the feed index.
type IndexEntry struct {
	Name   string `yaml:"name"`
	Hidden bool   `yaml:"hidden,omitempty"`
}
