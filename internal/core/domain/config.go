// Package domain contains the core domain models of the bundler: configuration,
// module records, the module table, and package manifests.
package domain

import (
	"maps"
	"slices"
	"strings"
)

// LoaderKind identifies one of the closed set of module loaders.
type LoaderKind string

const (
	// LoaderCode reads source text and scans it for dependencies.
	LoaderCode LoaderKind = "code"
	// LoaderAsset copies a static file and links it as a URL string.
	LoaderAsset LoaderKind = "asset"
	// LoaderStylesheet copies a stylesheet and links it as a side effect.
	LoaderStylesheet LoaderKind = "css"
)

// ParseLoaderKind maps a configured loader name to its kind.
// It returns false for names that do not denote a known loader.
func ParseLoaderKind(name string) (LoaderKind, bool) {
	switch strings.ToLower(name) {
	case string(LoaderCode):
		return LoaderCode, true
	case string(LoaderAsset), "assets":
		return LoaderAsset, true
	case string(LoaderStylesheet), "style", "stylesheet":
		return LoaderStylesheet, true
	default:
		return "", false
	}
}

// LoaderClaim is a loader together with the file extensions it claims.
type LoaderClaim struct {
	Name       string
	Extensions []string
}

// TransformerOptions is the opaque option set handed to the source transformer.
type TransformerOptions map[string]any

// String returns the option value for key if it is a string.
func (o TransformerOptions) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringMap returns the option value for key if it is a map of strings.
func (o TransformerOptions) StringMap(key string) map[string]string {
	raw, ok := o[key].(map[string]any)
	if !ok {
		if typed, ok := o[key].(map[string]string); ok {
			return maps.Clone(typed)
		}
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Config is the resolved build configuration consumed by the engine.
type Config struct {
	// EntryPoint is the entry module, relative to ProjectRoot.
	EntryPoint string
	// ProjectRoot is the directory modules and the public directory are resolved from.
	ProjectRoot string
	// OutputDirectory receives the bundle and every emitted asset.
	OutputDirectory string
	// PublicDirectory is copied into OutputDirectory after assembly, relative to ProjectRoot.
	PublicDirectory string
	// Extensions are probed in order when a relative specifier has no extension.
	Extensions []string
	// Loaders are checked in declaration order; the first claim wins.
	Loaders []LoaderClaim
	// Transformer is passed through to the source transformer untouched.
	Transformer TransformerOptions
	// NodeEnv is exposed to bundled code as process.env.NODE_ENV.
	NodeEnv string
}

// DefaultConfig returns the built-in configuration every config file is merged over.
func DefaultConfig() Config {
	return Config{
		EntryPoint:      "src/index.js",
		ProjectRoot:     ".",
		OutputDirectory: "dist",
		PublicDirectory: "public",
		Extensions:      []string{".js", ".ts", ".jsx", ".tsx"},
		Loaders: []LoaderClaim{
			{Name: string(LoaderAsset), Extensions: []string{".png", ".jpg", ".svg"}},
			{Name: string(LoaderStylesheet), Extensions: []string{".css"}},
		},
		Transformer: TransformerOptions{
			"format": "cjs",
			"target": "es2017",
		},
		NodeEnv: "PRODUCTION",
	}
}

// LoaderFor returns the kind of the first loader claiming path's extension.
// Paths no loader claims belong to the code loader.
func (c *Config) LoaderFor(path string) LoaderKind {
	for _, claim := range c.Loaders {
		if !hasAnySuffix(path, claim.Extensions) {
			continue
		}
		if kind, ok := ParseLoaderKind(claim.Name); ok {
			return kind
		}
	}
	return LoaderCode
}

// HasKnownExtension reports whether path ends in a source extension or in an
// extension claimed by any loader.
func (c *Config) HasKnownExtension(path string) bool {
	if hasAnySuffix(path, c.Extensions) {
		return true
	}
	return slices.ContainsFunc(c.Loaders, func(claim LoaderClaim) bool {
		return hasAnySuffix(path, claim.Extensions)
	})
}

func hasAnySuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
