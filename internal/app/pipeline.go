package app

import (
	"context"
	"fmt"
	"io"

	"github.com/erikmannerfelt/manus/internal/expr"
	"github.com/erikmannerfelt/manus/internal/helpers"
	"github.com/erikmannerfelt/manus/internal/loader"
	"github.com/erikmannerfelt/manus/internal/render"
	"github.com/erikmannerfelt/manus/internal/resolve"
	"github.com/erikmannerfelt/manus/internal/value"
)

// LoadData reads a data set from a file path, or from stdin when the
// argument is "-" (JSON only for streams).
func (a *App) LoadData(ctx context.Context, dataArg string, stdin io.Reader) (*value.Store, error) {
	ctx = a.context(ctx)
	if dataArg == "-" {
		return loader.LoadReader(ctx, stdin)
	}
	return loader.LoadFile(ctx, dataArg)
}

// ResolveData runs the resolution pipeline over a loaded tree: extract
// expression nodes, resolve the dependency graph, write results back.
// After it returns nil the tree holds no unresolved expressions.
func (a *App) ResolveData(ctx context.Context, store *value.Store) error {
	ctx = a.context(ctx)

	nodes, err := expr.Extract(ctx, store)
	if err != nil {
		return err
	}
	if err := resolve.Resolve(ctx, store, nodes); err != nil {
		return err
	}
	return nil
}

// Render substitutes placeholders in template lines against a resolved
// tree. The whole pass fails on the first bad placeholder; a document with
// silently unresolved numbers is worse than no document.
func (a *App) Render(ctx context.Context, lines []string, store *value.Store) ([]string, error) {
	ctx = a.context(ctx)

	lib := helpers.NewLibrary(store, a.helperOptions())
	rendered, err := render.New(store, lib).RenderLines(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	return rendered, nil
}

// Fill is the full data pass over a template: load, resolve, render. An
// empty dataArg leaves the lines untouched, matching a build with no data
// file.
func (a *App) Fill(ctx context.Context, lines []string, dataArg string, stdin io.Reader) ([]string, error) {
	if dataArg == "" {
		return lines, nil
	}
	store, err := a.LoadData(ctx, dataArg, stdin)
	if err != nil {
		return nil, err
	}
	if err := a.ResolveData(ctx, store); err != nil {
		return nil, err
	}
	return a.Render(ctx, lines, store)
}
