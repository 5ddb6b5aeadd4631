// Package config provides the configuration loader for packager.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// EnvPrefix prefixes environment variables that override configuration keys.
const EnvPrefix = "PACKAGER"

// Loader implements ports.ConfigLoader using viper.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load layers defaults, the YAML file and PACKAGER_* variables, in increasing precedence.
// With an empty configPath the file in root is optional; an explicit one must exist.
func (l *Loader) Load(root, configPath string) (domain.Config, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	path := configPath
	if path == "" {
		path = filepath.Join(root, domain.ConfigFileName)
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.Config{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigLoad, err), "path", path)
		}
	case configPath != "" || !errors.Is(statErr, os.ErrNotExist):
		return domain.Config{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigLoad, statErr), "path", path)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return domain.Config{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigLoad, err), "path", path)
	}

	return toDomain(root, &f), nil
}

func setDefaults(v *viper.Viper, d domain.Config) {
	v.SetDefault("packages-dir", d.PackagesDir)
	v.SetDefault("data-dir", d.DataDir)
	v.SetDefault("bin-dir", d.BinDir)
	v.SetDefault("feed-dir", d.FeedDir)
	v.SetDefault("version-injection", d.VersionInjection)
	v.SetDefault("skip-list", d.SkipList)
	v.SetDefault("hide-list", d.HideList)
	v.SetDefault("executable", d.Executable)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("binary-extensions", d.BinaryExtensions)
	v.SetDefault("runtime-prefixes", d.Runtime.Prefixes)
	v.SetDefault("runtime-modules", d.Runtime.Names)
	v.SetDefault("partial", d.Partial)
	v.SetDefault("jobs", d.Jobs)
}

func toDomain(root string, f *File) domain.Config {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	jobs := f.Jobs
	if jobs < 1 {
		jobs = 1
	}

	return domain.Config{
		Root:             root,
		PackagesDir:      resolve(f.PackagesDir),
		DataDir:          f.DataDir,
		BinDir:           f.BinDir,
		FeedDir:          resolve(f.FeedDir),
		VersionInjection: resolve(f.VersionInjection),
		SkipList:         resolve(f.SkipList),
		HideList:         resolve(f.HideList),
		Executable:       f.Executable,
		Exclude:          f.Exclude,
		BinaryExtensions: f.BinaryExtensions,
		Runtime: domain.RuntimeModules{
			Prefixes: f.RuntimePrefixes,
			Names:    f.RuntimeModules,
		},
		Partial: f.Partial,
		Jobs:    jobs,
	}
}
