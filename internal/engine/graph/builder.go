// Package graph discovers every module reachable from the entry point.
package graph

import (
	"context"
	"path/filepath"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/engine/loader"
)

// Builder walks the dependency graph breadth first.
type Builder struct {
	cfg      *domain.Config
	resolver loader.Resolver
	registry *loader.Registry
}

// NewBuilder creates a Builder.
func NewBuilder(cfg *domain.Config, resolver loader.Resolver, registry *loader.Registry) *Builder {
	return &Builder{cfg: cfg, resolver: resolver, registry: registry}
}

type pending struct {
	specifier string
	dir       string
}

// Build returns the frozen module table. Ids follow discovery order, so the
// entry module is 0 and the ids are stable for an unchanged source tree.
func (b *Builder) Build(ctx context.Context) (*domain.ModuleTable, error) {
	table := domain.NewModuleTable()
	queue := []pending{{specifier: "./" + filepath.ToSlash(b.cfg.EntryPoint), dir: b.cfg.ProjectRoot}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := queue[0]
		queue = queue[1:]

		path, err := b.resolver.Resolve(ctx, next.specifier, next.dir)
		if err != nil {
			return nil, err
		}
		if table.Has(path) {
			continue
		}

		l := b.registry.Select(path)
		id := table.Len()
		res, err := l.Load(ctx, loader.Request{Path: path, ID: id})
		if err != nil {
			return nil, err
		}

		rec := &domain.ModuleRecord{
			Path:             path,
			ID:               id,
			Loader:           l.Kind(),
			Code:             res.Code,
			Dependencies:     res.Dependencies,
			RequireStatement: res.RequireStatement,
		}
		if err := table.Add(rec); err != nil {
			return nil, domain.Classify(domain.ErrBuildFailed, err)
		}

		dir := filepath.Dir(path)
		for _, dep := range res.Dependencies {
			queue = append(queue, pending{specifier: dep.Specifier, dir: dir})
		}
	}

	table.Freeze()
	return table, nil
}
