// Package esbuild implements the source transformer on top of the esbuild Go API.
package esbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer implements ports.Transformer with esbuild's single-file transform.
type Transformer struct{}

// New creates a new Transformer.
func New() *Transformer {
	return &Transformer{}
}

// Transform converts one module to the configured format and target.
func (t *Transformer) Transform(ctx context.Context, req ports.TransformRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts, err := buildOptions(req)
	if err != nil {
		return "", domain.Classify(domain.ErrTransform, zerr.With(err, "path", req.Path))
	}

	result := api.Transform(req.Code, opts)
	if len(result.Errors) > 0 {
		return "", domain.Classify(domain.ErrTransform, messageError(req.Path, result.Errors))
	}
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		for _, w := range result.Warnings {
			vertex.Log(domain.LogLevelWarn, formatMessage(req.Path, w))
		}
	}

	return string(result.Code), nil
}

func buildOptions(req ports.TransformRequest) (api.TransformOptions, error) {
	o := req.Options
	opts := api.TransformOptions{
		Sourcefile: req.Path,
		Loader:     loaderForPath(req.Path),
		Format:     api.FormatCommonJS,
		Target:     api.ES2017,
		Platform:   api.PlatformBrowser,
		LogLevel:   api.LogLevelSilent,
	}

	if v, ok := o.String("loader"); ok {
		loader, found := loaders[strings.ToLower(v)]
		if !found {
			return opts, invalidOption("loader", v)
		}
		opts.Loader = loader
	}
	if v, ok := o.String("format"); ok {
		format, found := formats[strings.ToLower(v)]
		if !found {
			return opts, invalidOption("format", v)
		}
		opts.Format = format
	}
	if v, ok := o.String("target"); ok {
		target, found := targets[strings.ToLower(v)]
		if !found {
			return opts, invalidOption("target", v)
		}
		opts.Target = target
	}
	if v, ok := o.String("platform"); ok {
		platform, found := platforms[strings.ToLower(v)]
		if !found {
			return opts, invalidOption("platform", v)
		}
		opts.Platform = platform
	}
	if v, ok := o.String("jsx"); ok {
		mode, found := jsxModes[strings.ToLower(v)]
		if !found {
			return opts, invalidOption("jsx", v)
		}
		opts.JSX = mode
	}
	if v, ok := o.String("jsxFactory"); ok {
		opts.JSXFactory = v
	}
	if v, ok := o.String("jsxFragment"); ok {
		opts.JSXFragment = v
	}
	if v, ok := o.String("jsxImportSource"); ok {
		opts.JSXImportSource = v
	}
	if define := o.StringMap("define"); len(define) > 0 {
		opts.Define = define
	}

	return opts, nil
}

var (
	loaders = map[string]api.Loader{
		"js":  api.LoaderJS,
		"jsx": api.LoaderJSX,
		"ts":  api.LoaderTS,
		"tsx": api.LoaderTSX,
	}
	formats = map[string]api.Format{
		"cjs":      api.FormatCommonJS,
		"commonjs": api.FormatCommonJS,
		"esm":      api.FormatESModule,
		"iife":     api.FormatIIFE,
	}
	targets = map[string]api.Target{
		"es5":    api.ES5,
		"es2015": api.ES2015,
		"es2016": api.ES2016,
		"es2017": api.ES2017,
		"es2018": api.ES2018,
		"es2019": api.ES2019,
		"es2020": api.ES2020,
		"es2021": api.ES2021,
		"es2022": api.ES2022,
		"esnext": api.ESNext,
	}
	platforms = map[string]api.Platform{
		"browser": api.PlatformBrowser,
		"node":    api.PlatformNode,
		"neutral": api.PlatformNeutral,
	}
	jsxModes = map[string]api.JSX{
		"transform": api.JSXTransform,
		"automatic": api.JSXAutomatic,
		"preserve":  api.JSXPreserve,
	}
)

// loaderForPath infers the loader from the extension. TSX parses every
// other syntax esbuild accepts, so unknown extensions use it.
func loaderForPath(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return api.LoaderJS
	case ".jsx":
		return api.LoaderJSX
	case ".ts", ".cts", ".mts":
		return api.LoaderTS
	default:
		return api.LoaderTSX
	}
}

func invalidOption(key, value string) error {
	err := zerr.With(zerr.New("unsupported transformer option"), "option", key)
	return zerr.With(err, "value", value)
}

// formatMessage renders msg as "path:line:column: text".
func formatMessage(path string, msg api.Message) string {
	if loc := msg.Location; loc != nil {
		return fmt.Sprintf("%s:%d:%d: %s", path, loc.Line, loc.Column, msg.Text)
	}
	return path + ": " + msg.Text
}

func messageError(path string, msgs []api.Message) error {
	first := msgs[0]
	err := zerr.Wrap(zerr.New(first.Text), domain.ErrTransformerFailed.Error())
	err = zerr.With(err, "path", path)
	if loc := first.Location; loc != nil {
		err = zerr.With(err, "line", loc.Line)
		err = zerr.With(err, "column", loc.Column)
	}
	if len(msgs) > 1 {
		err = zerr.With(err, "more_errors", len(msgs)-1)
	}
	return err
}
