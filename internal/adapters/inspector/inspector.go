// Package inspector extracts module metadata from Go binaries.
package inspector

import (
	"debug/buildinfo"
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BinaryInspector = (*BuildInfoInspector)(nil)

const develVersion = "(devel)"

// copyrightFlag matches the start of "-X <pkg>.copyright=<value>" in the recorded linker flags.
var copyrightFlag = regexp.MustCompile(`-X[= ](['"]?)(?:[\w./-]+\.)?[Cc]opyright=`)

// BuildInfoInspector reads the build metadata embedded by the Go toolchain.
// Go links dependencies statically, so inspected binaries report no references.
type BuildInfoInspector struct{}

// New creates a new BuildInfoInspector.
func New() *BuildInfoInspector {
	return &BuildInfoInspector{}
}

// Inspect returns the binary's main module path, its version and any
// copyright string injected at link time.
func (i *BuildInfoInspector) Inspect(path string) (*domain.BinaryMetadata, error) {
	info, err := buildinfo.ReadFile(path)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrInspectionFailed, err), "path", path)
	}

	meta := &domain.BinaryMetadata{
		ModuleName: info.Main.Path,
		Version:    normalizeVersion(info.Main.Version),
	}
	if meta.ModuleName == "" {
		meta.ModuleName = info.Path
	}

	for _, s := range info.Settings {
		if s.Key == "-ldflags" {
			meta.Copyright = parseCopyright(s.Value)
		}
	}
	return meta, nil
}

func normalizeVersion(v string) string {
	if v == develVersion {
		return ""
	}
	return strings.TrimPrefix(v, "v")
}

func parseCopyright(ldflags string) string {
	loc := copyrightFlag.FindStringSubmatchIndex(ldflags)
	if loc == nil {
		return ""
	}
	quote := ldflags[loc[2]:loc[3]]
	rest := ldflags[loc[1]:]

	if quote == "" && rest != "" && (rest[0] == '\'' || rest[0] == '"') {
		quote, rest = rest[:1], rest[1:]
	}
	if quote != "" {
		if end := strings.Index(rest, quote); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		return rest[:end]
	}
	return rest
}
