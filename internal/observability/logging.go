// Package observability scopes log output to a build run. The build id and
// the current stage travel in the context.Context and are attached to every
// record logged through this package.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/postgen/internal/logfields"
)

type scope struct {
	buildID string
	stage   string
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithBuildID tags ctx with the id of the running build.
func WithBuildID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.buildID = id
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithStage tags ctx with the current build stage. The build id is kept.
func WithStage(ctx context.Context, stage string) context.Context {
	s := scopeFrom(ctx)
	s.stage = stage
	return context.WithValue(ctx, scopeKey{}, s)
}

// BuildID returns the build id carried by ctx, or "".
func BuildID(ctx context.Context) string { return scopeFrom(ctx).buildID }

// Stage returns the stage carried by ctx, or "".
func Stage(ctx context.Context) string { return scopeFrom(ctx).stage }

// Logger returns slog.Default() with the scope of ctx attached.
func Logger(ctx context.Context) *slog.Logger {
	s := scopeFrom(ctx)
	logger := slog.Default()
	if s.buildID != "" {
		logger = logger.With(logfields.BuildID(s.buildID))
	}
	if s.stage != "" {
		logger = logger.With(logfields.Stage(s.stage))
	}
	return logger
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Logger(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Logger(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Logger(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
