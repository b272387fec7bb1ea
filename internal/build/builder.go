package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/postgen/internal/config"
	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/frontmatter"
	"git.home.luguber.info/inful/postgen/internal/index"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/metrics"
	"git.home.luguber.info/inful/postgen/internal/observability"
	"git.home.luguber.info/inful/postgen/internal/post"
)

// Stage names, also used as metric labels.
const (
	StageDiscover = "discover"
	StageLoad     = "load"
	StageClean    = "clean"
	StagePublish  = "publish"
	StageIndex    = "index"
	StageAssets   = "assets"
)

// Builder runs builds for one configuration.
type Builder struct {
	cfg      *config.Config
	renderer post.Renderer
	recorder metrics.Recorder
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder. Nil keeps the no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// New creates a Builder that renders bodies with renderer.
func New(cfg *config.Config, renderer post.Renderer, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, renderer: renderer, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run performs a full build. The output directory is only touched after every
// document has been read and validated.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := newReport()
	ctx = observability.WithBuildID(ctx, uuid.NewString())
	observability.InfoContext(ctx, "Starting build",
		logfields.Path(b.cfg.Content.Directory),
		logfields.Output(b.cfg.Output.Directory))

	err := b.run(ctx, report)
	report.finish(err)

	b.recorder.ObserveBuildDuration(report.Duration)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
		return report, err
	}
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	observability.InfoContext(ctx, "Build complete",
		logfields.Count(report.Published),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (b *Builder) run(ctx context.Context, report *Report) error {
	src, posts, err := b.load(ctx, report)
	if err != nil {
		return err
	}

	if b.cfg.Output.Clean {
		if err := b.stage(ctx, StageClean, b.clean); err != nil {
			return err
		}
	}

	idx := index.New()
	err = b.stage(ctx, StagePublish, func(ctx context.Context) error {
		target := post.Target{
			OutputRoot:   b.cfg.Output.Directory,
			StaticPrefix: b.cfg.Assets.Prefix,
			Renderer:     b.renderer,
		}
		for _, p := range posts {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := p.Publish(target, idx)
			if err != nil {
				return err
			}
			if out != "" {
				report.Published++
				b.recorder.IncDocument(string(p.FrontMatter.Type()), metrics.DocumentPublished)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = b.stage(ctx, StageIndex, func(ctx context.Context) error {
		idx.Sort()
		path := filepath.Join(b.cfg.Output.Directory, b.cfg.Output.IndexFile)
		if err := idx.WriteFile(path); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write index").
				WithContext(frontmatter.ContextPath, path).
				Fatal().
				Build()
		}
		report.IndexPath = path
		b.recorder.SetIndexSize(len(idx.Posts), len(idx.TagRefs), len(idx.SectionRefs))
		observability.DebugContext(ctx, "Wrote index", logfields.Output(path), logfields.Count(idx.Len()))
		return nil
	})
	if err != nil {
		return err
	}

	if !b.cfg.Assets.Copy {
		return nil
	}
	return b.stage(ctx, StageAssets, func(context.Context) error {
		n, err := CopyAssets(src.Root, src.Assets, b.cfg.Assets.Directory)
		report.AssetsCopied = n
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy assets").
				WithContext(frontmatter.ContextPath, b.cfg.Assets.Directory).
				Fatal().
				Build()
		}
		return nil
	})
}

// Check discovers and validates every document without writing anything.
func (b *Builder) Check(ctx context.Context) (*Report, error) {
	report := newReport()
	ctx = observability.WithBuildID(ctx, uuid.NewString())
	_, _, err := b.load(ctx, report)
	report.finish(err)
	return report, err
}

// load runs discovery and validation, filling in the document counts.
func (b *Builder) load(ctx context.Context, report *Report) (*Sources, []*post.Post, error) {
	var src *Sources
	err := b.stage(ctx, StageDiscover, func(context.Context) error {
		var err error
		src, err = Discover(b.cfg.Content.Directory, b.cfg.Content.Extension)
		if err != nil {
			return err
		}
		report.Discovered = len(src.Posts)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var posts []*post.Post
	err = b.stage(ctx, StageLoad, func(ctx context.Context) error {
		seen := make(map[string]string, len(src.Posts))
		for _, path := range src.Posts {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := post.FromSource(path)
			if err != nil {
				b.recorder.IncDocument("unknown", metrics.DocumentInvalid)
				return err
			}
			key := p.FrontMatter.OutputPath("")
			if prev, ok := seen[key]; ok {
				b.recorder.IncDocument(string(p.FrontMatter.Type()), metrics.DocumentInvalid)
				return duplicateError(prev, path, key)
			}
			seen[key] = path

			switch p.FrontMatter.Type() {
			case frontmatter.TypeBlog:
				report.Blogs++
			case frontmatter.TypeAbout:
				report.Abouts++
			}
			if !p.FrontMatter.ShouldPublish() {
				report.Drafts++
				b.recorder.IncDocument(string(p.FrontMatter.Type()), metrics.DocumentDraft)
			}
			posts = append(posts, p)
		}
		observability.DebugContext(ctx, "Validated documents", logfields.Count(len(posts)))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return src, posts, nil
}

func duplicateError(first, second, key string) error {
	ref := strings.TrimSuffix(filepath.ToSlash(key), ".html")
	return ferrors.WrapError(ErrDuplicateRef, ferrors.CategoryDuplicate,
		fmt.Sprintf("%s: reference %q already used by %s", second, ref, first)).
		Fatal().
		WithContext(frontmatter.ContextPath, second).
		WithContext(frontmatter.ContextRule, "ref.unique").
		WithContext("first", first).
		Build()
}

// clean removes the output directory. It refuses to remove a directory that
// contains the content root.
func (b *Builder) clean(ctx context.Context) error {
	out, err := filepath.Abs(b.cfg.Output.Directory)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve output directory").Fatal().Build()
	}
	content, err := filepath.Abs(b.cfg.Content.Directory)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve content directory").Fatal().Build()
	}
	if rel, err := filepath.Rel(out, content); err == nil && filepath.IsLocal(rel) {
		return ferrors.ConfigError("refusing to clean an output directory that contains the content").
			WithContext(ferrors.KeyField, "output.directory").
			WithContext(frontmatter.ContextPath, out).
			Build()
	}
	if err := os.RemoveAll(out); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "clean output directory").
			WithContext(frontmatter.ContextPath, out).
			Fatal().
			Build()
	}
	observability.DebugContext(ctx, "Cleaned output directory", logfields.Output(out))
	return nil
}

// stage runs fn with the stage name attached to ctx and records its duration
// and result.
func (b *Builder) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	b.recorder.ObserveStageDuration(name, elapsed)
	if err != nil {
		b.recorder.IncStageResult(name, metrics.ResultFatal)
		return err
	}
	b.recorder.IncStageResult(name, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}
