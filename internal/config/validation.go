package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// Validate checks the configuration for values the build cannot work with.
func (c *Config) Validate() error {
	v := &configurationValidator{config: c}
	for _, check := range []func() error{v.validateContent, v.validateOutput, v.validateRender} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func invalid(field, format string, args ...any) error {
	return ferrors.ConfigError(fmt.Sprintf(format, args...)).WithContext(ferrors.KeyField, field).Build()
}

func (cv *configurationValidator) validateContent() error {
	content := cv.config.Content
	if strings.TrimSpace(content.Directory) == "" {
		return invalid("content.directory", "content directory cannot be empty")
	}
	if content.Extension == "" {
		return invalid("content.extension", "content extension cannot be empty")
	}
	if strings.ContainsAny(content.Extension, `/\`) {
		return invalid("content.extension", "content extension %q must not contain path separators", content.Extension)
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	out := cv.config.Output
	if strings.TrimSpace(out.Directory) == "" {
		return invalid("output.directory", "output directory cannot be empty")
	}
	if out.IndexFile == "" || !filepath.IsLocal(out.IndexFile) {
		return invalid("output.index_file", "index file %q must be a relative path inside the output directory", out.IndexFile)
	}
	if cv.config.Assets.Copy && strings.TrimSpace(cv.config.Assets.Directory) == "" {
		return invalid("assets.directory", "assets directory cannot be empty when asset copy is enabled")
	}
	return nil
}

func (cv *configurationValidator) validateRender() error {
	style := cv.config.Render.HighlightStyle
	if style == "" {
		return nil
	}
	if _, ok := styles.Registry[style]; !ok {
		return invalid("render.highlight_style", "unknown highlight style %q", style)
	}
	return nil
}
