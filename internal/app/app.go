// Package app implements the application layer for pack.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/engine/assemble"
	"go.trai.ch/pack/internal/engine/graph"
	"go.trai.ch/pack/internal/engine/loader"
	"go.trai.ch/pack/internal/engine/resolve"
	"go.trai.ch/pack/internal/engine/transform"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	fs           ports.FileSystem
	transformer  ports.Transformer
	locator      ports.DependencyLocator
	hasher       ports.Hasher
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fsys ports.FileSystem,
	transformer ports.Transformer,
	locator ports.DependencyLocator,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		fs:           fsys,
		transformer:  transformer,
		locator:      locator,
		hasher:       hasher,
		telemetry:    telemetry,
		logger:       log,
	}
}

// BuildOptions configures a single Build call.
type BuildOptions struct {
	// Cwd is the directory the config file and relative paths are taken from.
	// Empty means the process working directory.
	Cwd string
	// ConfigPath selects a config file explicitly.
	ConfigPath string
	// Parallelism bounds the transform workers. Zero means one per CPU.
	Parallelism int
}

// Build bundles the project and writes the result to the output directory.
// Every cache used along the way belongs to this call.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*domain.BuildResult, error) {
	start := time.Now()

	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		cwd = wd
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if err := a.fs.ResetDir(cfg.OutputDirectory); err != nil {
		return nil, domain.Classify(domain.ErrBuildFailed, err)
	}

	resolver := resolve.New(cfg, a.fs, a.locator)
	registry := loader.NewRegistry(cfg,
		loader.NewCodeLoader(a.fs, resolver),
		loader.NewAssetLoader(a.fs, a.telemetry, cfg.OutputDirectory),
		loader.NewStylesheetLoader(a.fs, a.telemetry, cfg.OutputDirectory),
	)

	var table *domain.ModuleTable
	err = a.phase(ctx, "resolve graph", func(ctx context.Context) error {
		var err error
		table, err = graph.NewBuilder(cfg, resolver, registry).Build(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("resolved %d modules", table.Len()))

	var fragments []domain.Fragment
	err = a.phase(ctx, "transform modules", func(ctx context.Context) error {
		var err error
		pool := transform.NewPool(a.transformer, a.telemetry, cfg.Transformer, opts.Parallelism)
		fragments, err = pool.TransformAll(ctx, table)
		return err
	})
	if err != nil {
		return nil, err
	}

	asm := assemble.New(cfg, a.fs, a.transformer)
	var artifact, artifactPath string
	err = a.phase(ctx, "assemble bundle", func(ctx context.Context) error {
		var err error
		if artifact, err = asm.Assemble(ctx, fragments, 0); err != nil {
			return err
		}
		artifactPath, err = asm.Write(artifact)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = a.phase(ctx, "copy public", func(context.Context) error {
		copied, err := asm.CopyPublic()
		if copied {
			a.logger.Info("copied public directory")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &domain.BuildResult{
		Modules:      table.Len(),
		ArtifactPath: artifactPath,
		ArtifactSize: len(artifact),
		Digest:       a.hasher.HashBytes([]byte(artifact)),
		Duration:     time.Since(start),
	}, nil
}

// phase runs fn inside a telemetry vertex.
func (a *App) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	vctx, vertex := a.telemetry.Record(ctx, name)
	err := fn(vctx)
	vertex.Complete(err)
	if err == nil {
		a.logger.Debug(fmt.Sprintf("%s took %s", name, time.Since(start).Round(time.Millisecond)))
	}
	return err
}
