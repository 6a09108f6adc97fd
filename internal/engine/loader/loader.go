// Package loader turns a resolved module path into module code, a require
// statement and dependencies, dispatching on the path's extension.
package loader

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
)

// Request identifies the module being loaded.
type Request struct {
	Path string
	ID   int
}

// Result is what a loader contributes to a module record.
type Result struct {
	Code             string
	RequireStatement string
	Dependencies     []domain.Dependency
}

// Loader produces the record contents for one kind of module.
type Loader interface {
	Kind() domain.LoaderKind
	Load(ctx context.Context, req Request) (Result, error)
}

// Resolver is the part of resolve.Resolver the code loader needs.
type Resolver interface {
	Resolve(ctx context.Context, specifier, currentDir string) (string, error)
}

// Registry selects a loader by the configured extension claims.
type Registry struct {
	cfg     *domain.Config
	loaders map[domain.LoaderKind]Loader
}

// NewRegistry creates a Registry over the given loaders. A code loader must be
// among them since it is the fallback.
func NewRegistry(cfg *domain.Config, loaders ...Loader) *Registry {
	r := &Registry{cfg: cfg, loaders: make(map[domain.LoaderKind]Loader, len(loaders))}
	for _, l := range loaders {
		r.loaders[l.Kind()] = l
	}
	return r
}

// Select returns the loader of the first claim matching path, or the code loader.
func (r *Registry) Select(path string) Loader {
	if l, ok := r.loaders[r.cfg.LoaderFor(path)]; ok {
		return l
	}
	return r.loaders[domain.LoaderCode]
}
