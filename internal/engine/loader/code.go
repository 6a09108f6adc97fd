package loader

import (
	"context"
	"path/filepath"
	"regexp"
	"sync"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	requirePattern = regexp.MustCompile(`require\(["']([^"']*)["']\)`)
	importPattern  = regexp.MustCompile(`import [^"']*["']([^"']*)["']`)
)

// CodeLoader reads source modules and scans them for dependencies.
type CodeLoader struct {
	fs       ports.FileSystem
	resolver Resolver

	mu    sync.Mutex
	cache map[string]codeEntry
}

type codeEntry struct {
	code string
	deps []domain.Dependency
}

// NewCodeLoader creates a CodeLoader. Its cache lives as long as the loader.
func NewCodeLoader(fsys ports.FileSystem, resolver Resolver) *CodeLoader {
	return &CodeLoader{
		fs:       fsys,
		resolver: resolver,
		cache:    make(map[string]codeEntry),
	}
}

// Kind returns domain.LoaderCode.
func (l *CodeLoader) Kind() domain.LoaderKind {
	return domain.LoaderCode
}

// Load returns the unmodified source and its resolved dependencies.
func (l *CodeLoader) Load(ctx context.Context, req Request) (Result, error) {
	l.mu.Lock()
	entry, ok := l.cache[req.Path]
	l.mu.Unlock()

	if !ok {
		data, err := l.fs.ReadFile(req.Path)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrModuleReadFailed.Error()), "path", req.Path)
			return Result{}, domain.Classify(domain.ErrBuildFailed, err)
		}

		entry.code = string(data)
		dir := filepath.Dir(req.Path)
		for _, specifier := range ScanSpecifiers(entry.code) {
			path, err := l.resolver.Resolve(ctx, specifier, dir)
			if err != nil {
				err = zerr.With(zerr.Wrap(err, "failed to resolve import"), "importer", req.Path)
				return Result{}, domain.Classify(domain.ErrResolution, err)
			}
			entry.deps = append(entry.deps, domain.Dependency{Specifier: specifier, Path: path})
		}

		l.mu.Lock()
		l.cache[req.Path] = entry
		l.mu.Unlock()
	}

	return Result{
		Code:             entry.code,
		RequireStatement: domain.RequireByID(req.ID),
		Dependencies:     entry.deps,
	}, nil
}

// ScanSpecifiers returns the specifiers of require("…") calls followed by
// those of import statements, each once, in order of first appearance.
func ScanSpecifiers(code string) []string {
	seen := make(map[string]bool)
	var specifiers []string
	for _, re := range []*regexp.Regexp{requirePattern, importPattern} {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			if specifier := m[1]; !seen[specifier] {
				seen[specifier] = true
				specifiers = append(specifiers, specifier)
			}
		}
	}
	return specifiers
}
