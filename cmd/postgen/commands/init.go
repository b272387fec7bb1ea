package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/logfields"
)

// InitCmd writes a configuration file holding every default.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g.Logger, root.Config, i.Force)
}

// RunInit writes the default configuration to path.
func RunInit(logger *slog.Logger, path string, force bool) error {
	if err := config.Init(path, force); err != nil {
		return err
	}
	logger.Info("Wrote default configuration", logfields.Path(path))
	return nil
}
