package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zillowe/zoi-release/internal/manifest"
)

const ConfigFile = ".zoi-release.yml"

const (
	DefaultManifest  = "Cargo.toml"
	DefaultConstants = "src/main.rs"
	DefaultStatus    = "app/version.json"
	DefaultFormula   = "packages/brew/zoi.rb"
)

const DefaultConfigContent = `# zoi release tooling configuration
#
# Every path is relative to the repository root. Remove a key (or leave it
# empty) to use the default shown here.

# RELEASE MANIFEST
#
# The file whose top-level 'version = "..."' line carries the composite
# version, e.g. 3.2.5-beta-prod.
manifest: Cargo.toml

# SOURCE CONSTANTS
#
# The file declaring 'const BRANCH', 'const STATUS' and 'const NUMBER'.
constants: src/main.rs

# STATUS FILE
#
# The JSON document published for the installers:
# {"latest": {"production": {...}, "development": {...}}}
status: app/version.json

# HOMEBREW FORMULA
formula: packages/brew/zoi.rb
`

type Config struct {
	Manifest  string `yaml:"manifest"`
	Constants string `yaml:"constants"`
	Status    string `yaml:"status"`
	Formula   string `yaml:"formula"`
	RootDir   string `yaml:"-"`
}

// New reads the configuration file from rootDir. A missing file yields the
// defaults.
func New(rootDir string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(filepath.Join(rootDir, ConfigFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if dErr := dec.Decode(cfg); dErr != nil && !errors.Is(dErr, io.EOF) {
			return nil, &InvalidYAMLError{Wrapped: dErr}
		}
	}

	cfg.RootDir = rootDir
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills empty properties with their defaults and rejects paths that
// leave the repository root.
func (c *Config) Validate() error {
	props := []struct {
		name string
		val  *string
		def  string
	}{
		{"manifest", &c.Manifest, DefaultManifest},
		{"constants", &c.Constants, DefaultConstants},
		{"status", &c.Status, DefaultStatus},
		{"formula", &c.Formula, DefaultFormula},
	}
	for _, p := range props {
		if *p.val == "" {
			*p.val = p.def
		}
		if !filepath.IsLocal(filepath.FromSlash(*p.val)) {
			return &InvalidPathError{Property: p.name, Value: *p.val}
		}
	}
	return nil
}

// Path resolves a configured relative path against the repository root.
func (c *Config) Path(rel string) string {
	return filepath.Join(c.RootDir, filepath.FromSlash(rel))
}

// ArtifactPaths returns the absolute path of every release artifact.
func (c *Config) ArtifactPaths() manifest.Paths {
	return manifest.Paths{
		Manifest:  c.Path(c.Manifest),
		Constants: c.Path(c.Constants),
		Status:    c.Path(c.Status),
		Formula:   c.Path(c.Formula),
	}
}

// WriteDefault creates the configuration file in rootDir. It refuses to
// overwrite an existing one.
func WriteDefault(rootDir string) (string, error) {
	path := filepath.Join(rootDir, ConfigFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &ConfigExistsError{Path: path}
		}
		return "", err
	}
	if _, err = f.WriteString(DefaultConfigContent); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
