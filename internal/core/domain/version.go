package domain

// DirectiveKind identifies a version policy directive.
type DirectiveKind int

const (
	// DirectiveInterfaceVersion sets the global interface version.
	DirectiveInterfaceVersion DirectiveKind = iota
	// DirectiveDefaultVersion assigns a version to every package that has none.
	DirectiveDefaultVersion
	// DirectivePackage resolves the version of one package.
	DirectivePackage
)

// String returns the directive's element name.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInterfaceVersion:
		return "interface-version"
	case DirectiveDefaultVersion:
		return "default-version"
	case DirectivePackage:
		return "package"
	default:
		return "unknown"
	}
}

// Directive is one entry of a version injection policy.
type Directive struct {
	Kind DirectiveKind
	// Name is the package a DirectivePackage applies to.
	Name string
	// Version is the literal version, or the interface version for DirectiveInterfaceVersion.
	Version                 string
	License                 string
	VersionSource           string
	VersionFromPackageFiles bool
	ExactMatch              bool
}

// VersionPolicy is an ordered stream of directives.
type VersionPolicy struct {
	Directives []Directive
}

// NameSet is a set of package names read from a skip or hide list.
type NameSet map[string]struct{}

// NewNameSet creates a set from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set. A nil set is empty.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// VersionTable holds the versions resolved so far.
type VersionTable struct {
	InterfaceVersion string
	versions         map[string]string
	exact            map[string]struct{}
}

// NewVersionTable creates an empty table with the default interface version.
func NewVersionTable() *VersionTable {
	return &VersionTable{
		InterfaceVersion: DefaultInterfaceVersion,
		versions:         make(map[string]string),
		exact:            make(map[string]struct{}),
	}
}

// Set records the version of a package.
func (t *VersionTable) Set(name, version string) {
	t.versions[name] = version
}

// Get returns the resolved version of a package.
func (t *VersionTable) Get(name string) (string, bool) {
	v, ok := t.versions[name]
	return v, ok && v != ""
}

// MarkExact adds a package to the exact-match set.
func (t *VersionTable) MarkExact(name string) {
	t.exact[name] = struct{}{}
}

// IsExact reports whether dependents must pin the package's exact version.
func (t *VersionTable) IsExact(name string) bool {
	_, ok := t.exact[name]
	return ok
}
