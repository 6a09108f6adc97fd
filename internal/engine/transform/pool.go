// Package transform turns recorded modules into linked, wrapped fragments.
package transform

import (
	"context"
	"runtime"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pool transforms modules concurrently.
type Pool struct {
	transformer ports.Transformer
	telemetry   ports.Telemetry
	options     domain.TransformerOptions
	parallelism int
}

// NewPool creates a Pool. A parallelism below 1 means runtime.NumCPU().
func NewPool(
	transformer ports.Transformer,
	telemetry ports.Telemetry,
	options domain.TransformerOptions,
	parallelism int,
) *Pool {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	return &Pool{
		transformer: transformer,
		telemetry:   telemetry,
		options:     options,
		parallelism: parallelism,
	}
}

// TransformAll returns one fragment per record, indexed by module id. The
// first failure cancels the remaining units and is returned.
func (p *Pool) TransformAll(ctx context.Context, table *domain.ModuleTable) ([]domain.Fragment, error) {
	if !table.Frozen() {
		return nil, domain.Classify(domain.ErrBuildFailed, zerr.New("module table must be frozen before transforming"))
	}

	fragments := make([]domain.Fragment, table.Len())

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)

	for rec := range table.Records() {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			vctx, vertex := p.telemetry.Record(groupCtx, "transform "+rec.Path, ports.WithInternal())
			code, err := p.transformOne(vctx, rec, table)
			vertex.Complete(err)
			if err != nil {
				return err
			}

			fragments[rec.ID] = domain.Fragment{ID: rec.ID, Path: rec.Path, Code: code}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fragments, nil
}

func (p *Pool) transformOne(ctx context.Context, rec *domain.ModuleRecord, table *domain.ModuleTable) (string, error) {
	code, err := p.transformer.Transform(ctx, ports.TransformRequest{
		Path:    rec.Path,
		Code:    rec.Code,
		Options: p.options,
	})
	if err != nil {
		return "", domain.Classify(domain.ErrTransform, zerr.With(err, "path", rec.Path))
	}

	linked, err := Link(code, rec, table)
	if err != nil {
		return "", err
	}
	return Wrap(rec.ID, linked), nil
}
