// Package config loads the postgen configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "postgen.yaml"

// Config is the complete postgen configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ContentConfig locates the source documents.
type ContentConfig struct {
	Directory string `yaml:"directory"` // Root of the post tree
	Extension string `yaml:"extension"` // Post file extension without the dot
}

// OutputConfig controls where pages and the index are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`      // Remove the directory before building
	IndexFile string `yaml:"index_file"` // Relative to Directory
}

// AssetsConfig controls the static file copy and the link prefix used for
// relative references in posts.
type AssetsConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
	Copy      bool   `yaml:"copy"`
}

// RenderConfig tunes the markup engine.
type RenderConfig struct {
	TOCTitle       string `yaml:"toc_title"`
	HighlightStyle string `yaml:"highlight_style"` // chroma style name; empty disables highlighting
	Sanitize       bool   `yaml:"sanitize"`
	Minify         bool   `yaml:"minify"`
	FencedDivs     bool   `yaml:"fenced_divs"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // Empty disables the export
}

// Load reads the configuration at path on top of the defaults. A missing file
// yields the defaults. Environment variables, including those from .env and
// .env.local, are expanded in the file before decoding.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, cfg.Validate()
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext(ferrors.KeyPath, path).
			Build()
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("failed to parse config file %s", path)).
			Fatal().
			WithContext(ferrors.KeyPath, path).
			Build()
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes the default configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext(ferrors.KeyPath, path).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal default config").Fatal().Build()
	}
	content := "# postgen configuration. ${VAR} references are expanded from the environment.\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext(ferrors.KeyPath, path).
			Build()
	}
	return nil
}
