package config

import "strings"

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Content: ContentConfig{Directory: "./data", Extension: "md"},
		Output:  OutputConfig{Directory: "./tmp", Clean: true, IndexFile: "meta.json"},
		Assets:  AssetsConfig{Directory: "./tmp/assets", Prefix: "/assets", Copy: true},
		Render:  RenderConfig{TOCTitle: "Contents", Minify: true},
	}
}

// normalize canonicalizes values users commonly spell more than one way.
func (c *Config) normalize() {
	c.Content.Extension = strings.TrimPrefix(strings.TrimSpace(c.Content.Extension), ".")
	c.Render.HighlightStyle = strings.ToLower(strings.TrimSpace(c.Render.HighlightStyle))
	if c.Render.TOCTitle == "" {
		c.Render.TOCTitle = "Contents"
	}
}
