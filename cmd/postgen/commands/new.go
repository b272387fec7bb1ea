package commands

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/postgen/internal/config"
	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/index"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/post"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Section string   `arg:"" help:"Section the post belongs to"`
	Title   string   `arg:"" help:"Post title"`
	Preview string   `short:"p" help:"Preview text (defaults to the title)"`
	Tags    []string `short:"t" help:"Tags, comma separated or repeated"`
	ID      *int     `help:"Post id (defaults to the next free id in the section)"`
	Date    string   `help:"Publication date as YYYY-MM-DD (defaults to today)"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	draft := post.Draft{
		Section: n.Section,
		Title:   n.Title,
		Preview: n.Preview,
		Tags:    n.Tags,
		ID:      n.ID,
	}
	if n.Date != "" {
		d, err := time.Parse(index.DateLayout, n.Date)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, fmt.Sprintf("invalid --date %q, expected YYYY-MM-DD", n.Date)).
				Fatal().
				Build()
		}
		draft.Date = d
	}

	path, err := post.Scaffold(cfg.Content.Directory, cfg.Content.Extension, draft)
	if err != nil {
		return err
	}
	slog.Debug("Scaffolded post", logfields.Path(path))
	fmt.Println(path)
	return nil
}
