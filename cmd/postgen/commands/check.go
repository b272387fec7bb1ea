package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/postgen/internal/build"
	"git.home.luguber.info/inful/postgen/internal/config"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Data    string `short:"d" help:"Override content.directory"`
	PostExt string `name:"post-ext" help:"Override content.extension"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if c.Data != "" {
		cfg.Content.Directory = c.Data
	}
	if c.PostExt != "" {
		cfg.Content.Extension = c.PostExt
	}

	report, err := build.New(cfg, newEngine(cfg)).Check(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(report.Summary())
	return nil
}
