package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the repository
// toplevel when no explicit path is given.
const DefaultFileName = "devflow.conf"

// Configuration errors.
var (
	// ErrNoPackages indicates the config declares no packages.
	ErrNoPackages = errors.New("no packages declared in configuration")

	// ErrNoVersionFile indicates a package entry without a version_file.
	ErrNoVersionFile = errors.New("package entry missing version_file")
)

// Package describes one package to build.
type Package struct {
	// VersionFile is the repo-relative path of the generated version
	// file for this package.
	VersionFile string `yaml:"version_file"`
}

// Config is the parsed devflow.conf.
type Config struct {
	Packages map[string]Package `yaml:"packages"`
}

// Load reads and validates a devflow.conf file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPackages)
	}
	for name, pkg := range cfg.Packages {
		if pkg.VersionFile == "" {
			return nil, fmt.Errorf("%s: package %q: %w", path, name, ErrNoVersionFile)
		}
	}

	return &cfg, nil
}

// Names returns the declared package names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Packages))
	for name := range c.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VersionFiles returns the version file paths of all packages, sorted.
func (c *Config) VersionFiles() []string {
	files := make([]string, 0, len(c.Packages))
	for _, pkg := range c.Packages {
		files = append(files, pkg.VersionFile)
	}
	sort.Strings(files)
	return files
}

// DiffIgnorePattern builds the regular expression handed to the build
// tool so generated version files stay out of the source diff. Shape:
// ^(file1)$|^(file2)$
func (c *Config) DiffIgnorePattern() string {
	files := c.VersionFiles()
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, "^("+regexp.QuoteMeta(f)+")$")
	}
	return strings.Join(parts, "|")
}
