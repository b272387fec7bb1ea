package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/postgen/cmd/postgen/commands"
	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("postgen"),
		kong.Description("Render a tree of markdown posts into a static blog."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
