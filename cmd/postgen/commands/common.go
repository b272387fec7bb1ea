package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/markup"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"postgen.yaml" env:"POSTGEN_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Render every post and write the index"`
	Check CheckCmd `cmd:"" help:"Validate every post without writing output"`
	Init  InitCmd  `cmd:"" help:"Write a configuration file with the defaults"`
	New   NewCmd   `cmd:"" help:"Scaffold a new draft post"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)})))
	return nil
}

// parseLogLevel honours POSTGEN_LOG_LEVEL unless --verbose is given.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("POSTGEN_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newEngine builds the markup engine described by cfg.
func newEngine(cfg *config.Config) *markup.Engine {
	return markup.New(
		markup.WithTOCTitle(cfg.Render.TOCTitle),
		markup.WithHighlightStyle(cfg.Render.HighlightStyle),
		markup.WithSanitize(cfg.Render.Sanitize),
		markup.WithMinify(cfg.Render.Minify),
		markup.WithFencedDivs(cfg.Render.FencedDivs),
	)
}
