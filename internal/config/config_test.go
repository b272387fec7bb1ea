package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "./data", cfg.Content.Directory)
	assert.Equal(t, "md", cfg.Content.Extension)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, "meta.json", cfg.Output.IndexFile)
	assert.Equal(t, "/assets", cfg.Assets.Prefix)
	assert.True(t, cfg.Render.Minify)
}

func TestLoad_PartialFile_KeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
content:
  extension: .markdown
output:
  clean: false
render:
  highlight_style: Monokai
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Content.Extension)
	assert.Equal(t, "./data", cfg.Content.Directory)
	assert.False(t, cfg.Output.Clean)
	assert.Equal(t, "monokai", cfg.Render.HighlightStyle)
	assert.True(t, cfg.Assets.Copy)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("POSTGEN_TEST_OUT", "/srv/site")
	path := writeConfig(t, "output:\n  directory: ${POSTGEN_TEST_OUT}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/site", cfg.Output.Directory)
}

func TestLoad_DotEnvFile_DoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("POSTGEN_TEST_DOTENV_DIR=from-dotenv\nPOSTGEN_TEST_DOTENV_EXT=txt\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postgen.yaml"),
		[]byte("content:\n  directory: ${POSTGEN_TEST_DOTENV_DIR}\n  extension: ${POSTGEN_TEST_DOTENV_EXT}\n"), 0o600))
	t.Setenv("POSTGEN_TEST_DOTENV_EXT", "md")
	t.Cleanup(func() { _ = os.Unsetenv("POSTGEN_TEST_DOTENV_DIR") })
	t.Chdir(dir)

	cfg, err := Load("postgen.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Content.Directory)
	assert.Equal(t, "md", cfg.Content.Extension)
}

func TestLoad_MalformedYAML_ConfigError(t *testing.T) {
	path := writeConfig(t, "content: [oops\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty extension", func(c *Config) { c.Content.Extension = "" }, "content.extension"},
		{"extension with separator", func(c *Config) { c.Content.Extension = "a/b" }, "content.extension"},
		{"empty content dir", func(c *Config) { c.Content.Directory = " " }, "content.directory"},
		{"empty output dir", func(c *Config) { c.Output.Directory = "" }, "output.directory"},
		{"escaping index file", func(c *Config) { c.Output.IndexFile = "../meta.json" }, "output.index_file"},
		{"absolute index file", func(c *Config) { c.Output.IndexFile = "/meta.json" }, "output.index_file"},
		{"empty assets dir", func(c *Config) { c.Assets.Directory = "" }, "assets.directory"},
		{"unknown style", func(c *Config) { c.Render.HighlightStyle = "no-such-style" }, "render.highlight_style"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
			assert.Equal(t, tc.field, ferrors.ContextString(err, ferrors.KeyField))
		})
	}
}

func TestValidate_NestedIndexFile_Allowed(t *testing.T) {
	cfg := Default()
	cfg.Output.IndexFile = "api/meta.json"
	require.NoError(t, cfg.Validate())
}

func TestInit_WritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postgen.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInit_ExistingFile_RequiresForce(t *testing.T) {
	path := writeConfig(t, "content:\n  extension: txt\n")

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, Init(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "md", cfg.Content.Extension)
}
