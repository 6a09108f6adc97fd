// Package assemble concatenates transformed fragments into the final bundle.
package assemble

import (
	"context"
	_ "embed"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runtime is the module loader every bundle starts with. It defines
// define(id, factory) and requireModule(id).
//
//go:embed runtime.js
var Runtime string

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// Assembler builds and writes the bundle for one configuration.
type Assembler struct {
	cfg         *domain.Config
	fs          ports.FileSystem
	transformer ports.Transformer
}

// New creates an Assembler.
func New(cfg *domain.Config, fsys ports.FileSystem, transformer ports.Transformer) *Assembler {
	return &Assembler{cfg: cfg, fs: fsys, transformer: transformer}
}

// Globals returns the stubs bundled code may reference at the top level.
func Globals(nodeEnv string) string {
	return "const exports = {};\nconst process = { env: { NODE_ENV: '" + quoteEscaper.Replace(nodeEnv) + "' } };"
}

// Bootstrap returns the statement that runs the entry module.
func Bootstrap(entryID int) string {
	return "requireModule(" + strconv.Itoa(entryID) + ");"
}

// Assemble joins, one per line, the globals, the transformed runtime, every
// fragment and the bootstrap call.
func (a *Assembler) Assemble(ctx context.Context, fragments []domain.Fragment, entryID int) (string, error) {
	runtime, err := a.transformer.Transform(ctx, ports.TransformRequest{
		Path:    domain.RuntimeFileName,
		Code:    Runtime,
		Options: a.cfg.Transformer,
	})
	if err != nil {
		return "", domain.Classify(domain.ErrTransform, zerr.With(err, "path", domain.RuntimeFileName))
	}

	nodeEnv := a.cfg.NodeEnv
	if nodeEnv == "" {
		nodeEnv = domain.DefaultConfig().NodeEnv
	}

	parts := make([]string, 0, len(fragments)+3)
	parts = append(parts, Globals(nodeEnv), runtime)
	for _, f := range fragments {
		parts = append(parts, f.Code)
	}
	parts = append(parts, Bootstrap(entryID))

	return strings.Join(parts, "\n"), nil
}

// ArtifactPath returns where Write puts the bundle.
func (a *Assembler) ArtifactPath() string {
	return filepath.Join(a.cfg.OutputDirectory, domain.BundleFileName)
}

// Write stores the bundle in the output directory and returns its path.
func (a *Assembler) Write(artifact string) (string, error) {
	path := a.ArtifactPath()
	if err := a.fs.WriteFile(path, []byte(artifact)); err != nil {
		return "", domain.Classify(domain.ErrBuildFailed, err)
	}
	return path, nil
}

// CopyPublic copies the public directory into the output directory. It
// reports false without error when the project has no public directory.
func (a *Assembler) CopyPublic() (bool, error) {
	dir := a.cfg.PublicDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.cfg.ProjectRoot, dir)
	}
	if !a.fs.Exists(dir) {
		return false, nil
	}
	if err := a.fs.CopyTree(dir, a.cfg.OutputDirectory); err != nil {
		return false, domain.Classify(domain.ErrBuildFailed, err)
	}
	return true, nil
}
