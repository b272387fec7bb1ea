package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/postgen/internal/build"
	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Data     string `short:"d" help:"Override content.directory"`
	Output   string `short:"o" help:"Override output.directory"`
	Static   string `short:"s" help:"Override assets.directory"`
	PostExt  string `name:"post-ext" help:"Override content.extension"`
	NoClean  bool   `name:"no-clean" help:"Keep existing files in the output directory"`
	NoAssets bool   `name:"no-assets" help:"Skip copying static files"`
	Textfile string `name:"metrics-textfile" help:"Override metrics.textfile"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, cfg)
}

// apply overlays the command line flags onto cfg and revalidates it.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Data != "" {
		cfg.Content.Directory = b.Data
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Static != "" {
		cfg.Assets.Directory = b.Static
	}
	if b.PostExt != "" {
		cfg.Content.Extension = b.PostExt
	}
	if b.NoClean {
		cfg.Output.Clean = false
	}
	if b.NoAssets {
		cfg.Assets.Copy = false
	}
	if b.Textfile != "" {
		cfg.Metrics.Textfile = b.Textfile
	}
	return cfg.Validate()
}

// RunBuild runs one build with cfg and exports metrics when configured.
func RunBuild(ctx context.Context, cfg *config.Config) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	report, err := build.New(cfg, newEngine(cfg), build.WithRecorder(recorder)).Run(ctx)

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	return nil
}
