package loader

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// emitter copies a source file once into the output directory under a
// random name that keeps its extension. Each emit is recorded as an
// internal vertex; repeats are marked cached.
type emitter struct {
	fs        ports.FileSystem
	telemetry ports.Telemetry
	outputDir string
	newName   func() string

	mu    sync.Mutex
	names map[string]string
}

func newEmitter(fsys ports.FileSystem, tel ports.Telemetry, outputDir string) *emitter {
	return &emitter{
		fs:        fsys,
		telemetry: tel,
		outputDir: outputDir,
		newName:   uuid.NewString,
		names:     make(map[string]string),
	}
}

// emit returns the emitted file name for path, copying it on first use.
func (e *emitter) emit(ctx context.Context, path string) (string, error) {
	_, vertex := e.telemetry.Record(ctx, "emit "+path, ports.WithInternal())

	e.mu.Lock()
	defer e.mu.Unlock()

	if name, ok := e.names[path]; ok {
		vertex.Cached()
		vertex.Complete(nil)
		return name, nil
	}

	name, err := e.copy(path)
	vertex.Complete(err)
	if err != nil {
		return "", err
	}
	e.names[path] = name
	return name, nil
}

func (e *emitter) copy(path string) (string, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrModuleReadFailed.Error()), "path", path)
		return "", domain.Classify(domain.ErrBuildFailed, err)
	}

	name := e.newName() + filepath.Ext(path)
	if err := e.fs.WriteFile(filepath.Join(e.outputDir, name), data); err != nil {
		return "", domain.Classify(domain.ErrBuildFailed, zerr.With(err, "source", path))
	}
	return name, nil
}

// AssetLoader emits static files and links them as their public URL.
type AssetLoader struct {
	*emitter
}

// NewAssetLoader creates an AssetLoader writing into outputDir.
func NewAssetLoader(fsys ports.FileSystem, tel ports.Telemetry, outputDir string) *AssetLoader {
	return &AssetLoader{emitter: newEmitter(fsys, tel, outputDir)}
}

// Kind returns domain.LoaderAsset.
func (l *AssetLoader) Kind() domain.LoaderKind {
	return domain.LoaderAsset
}

// Load emits the file. Requiring the module yields the string "/<name>".
func (l *AssetLoader) Load(ctx context.Context, req Request) (Result, error) {
	name, err := l.emit(ctx, req.Path)
	if err != nil {
		return Result{}, err
	}
	return Result{RequireStatement: strconv.Quote("/" + name)}, nil
}
