package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/helpers"
)

// Config holds everything an App needs to run one invocation.
type Config struct {
	// LogFormat is "text" or "json".
	LogFormat string
	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string
	// PairSeparator overrides the token pm places between a value and its
	// uncertainty; empty selects the TeX default.
	PairSeparator string
}

// App encapsulates the pipeline's dependencies and its configured logger.
type App struct {
	logger  *slog.Logger
	pairSep string
}

// New constructs an App. Log output goes to logW, which should not be the
// stream rendered documents are written to.
func New(logW io.Writer, cfg Config) *App {
	return &App{
		logger:  newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		pairSep: cfg.PairSeparator,
	}
}

// Logger returns the App's configured logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// context returns a ctx carrying the App's logger for the library packages.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

func (a *App) helperOptions() helpers.Options {
	return helpers.Options{PairSeparator: a.pairSep}
}
