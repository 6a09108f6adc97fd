// Package resolve maps import specifiers to absolute module paths.
package resolve

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Resolver resolves specifiers for a single build. Results are memoized for
// the Resolver's lifetime, so a new Resolver is created per build.
type Resolver struct {
	cfg     *domain.Config
	fs      ports.FileSystem
	locator ports.DependencyLocator

	lookups   singleflight.Group
	mu        sync.Mutex
	locations map[string]string
	resolved  map[resolveKey]string
}

type resolveKey struct {
	dir       string
	specifier string
}

// New creates a Resolver for cfg.
func New(cfg *domain.Config, fsys ports.FileSystem, locator ports.DependencyLocator) *Resolver {
	return &Resolver{
		cfg:       cfg,
		fs:        fsys,
		locator:   locator,
		locations: make(map[string]string),
		resolved:  make(map[resolveKey]string),
	}
}

// Resolve returns the absolute path for specifier as written in a module
// located in currentDir. Failures carry domain.ErrResolution.
func (r *Resolver) Resolve(ctx context.Context, specifier, currentDir string) (string, error) {
	key := resolveKey{specifier: specifier}
	if IsRelative(specifier) {
		key.dir = currentDir
	}

	r.mu.Lock()
	path, ok := r.resolved[key]
	r.mu.Unlock()
	if ok {
		return path, nil
	}

	var err error
	if IsRelative(specifier) {
		path, err = r.resolveFile(specifier, currentDir)
	} else {
		path, err = r.resolvePackage(ctx, specifier)
	}
	if err != nil {
		err = zerr.With(err, "specifier", specifier)
		return "", domain.Classify(domain.ErrResolution, zerr.With(err, "dir", currentDir))
	}

	r.mu.Lock()
	r.resolved[key] = path
	r.mu.Unlock()
	return path, nil
}

// IsRelative reports whether specifier names a file rather than a package.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, ".") || filepath.IsAbs(specifier)
}

func (r *Resolver) resolveFile(specifier, currentDir string) (string, error) {
	joined := specifier
	if !filepath.IsAbs(specifier) {
		joined = filepath.Join(currentDir, specifier)
	}

	if r.cfg.HasKnownExtension(joined) {
		return joined, nil
	}
	if probed, ok := r.probe(joined); ok {
		return probed, nil
	}
	return "", domain.ErrNoModuleFound
}

// probe returns the first path+ext that exists, in configured order.
func (r *Resolver) probe(path string) (string, bool) {
	for _, ext := range r.cfg.Extensions {
		if candidate := path + ext; r.fs.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) resolvePackage(ctx context.Context, specifier string) (string, error) {
	name, rest := SplitPackageSpecifier(specifier)

	root, err := r.locate(ctx, name)
	if err != nil {
		return "", zerr.With(err, "package", name)
	}

	manifest, err := r.readManifest(root)
	if err != nil {
		return "", zerr.With(err, "package", name)
	}

	var entry string
	if rest != "" {
		entry, _ = ResolveExports(manifest.Exports, "."+rest)
	} else {
		entry = manifest.Main
		if entry == "" {
			entry, _ = ResolveExports(manifest.Exports, ".")
		}
	}
	if entry == "" {
		return "", zerr.With(domain.ErrNoEntrypoint, "package", name)
	}

	path := filepath.Join(root, filepath.FromSlash(entry))
	if !r.fs.Exists(path) {
		if probed, ok := r.probe(path); ok {
			return probed, nil
		}
	}
	return path, nil
}

// SplitPackageSpecifier splits "pkg/sub" or "@scope/pkg/sub" into the package
// name and the remainder, which keeps its leading slash.
func SplitPackageSpecifier(specifier string) (name, rest string) {
	segments := strings.SplitN(specifier, "/", 3)
	n := 1
	if strings.HasPrefix(segments[0], "@") && len(segments) > 1 {
		n = 2
	}
	name = strings.Join(segments[:n], "/")
	return name, strings.TrimSpace(strings.TrimPrefix(specifier, name))
}

// locate memoizes install locations by package name. Concurrent lookups of
// the same name share one call to the locator.
func (r *Resolver) locate(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	dir, ok := r.locations[name]
	r.mu.Unlock()
	if ok {
		return dir, nil
	}

	v, err, _ := r.lookups.Do(name, func() (any, error) {
		r.mu.Lock()
		dir, ok := r.locations[name]
		r.mu.Unlock()
		if ok {
			return dir, nil
		}

		dir, err := r.locator.Locate(ctx, name, r.cfg.ProjectRoot)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		r.locations[name] = dir
		r.mu.Unlock()
		return dir, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Resolver) readManifest(root string) (*domain.PackageManifest, error) {
	path := filepath.Join(root, domain.ManifestFileName)
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "path", path)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return manifest, nil
}
