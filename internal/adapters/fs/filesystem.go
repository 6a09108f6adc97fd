package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*OSFS)(nil)

// OSFS implements ports.FileSystem on the local disk.
type OSFS struct {
	walker *Walker
}

// NewOSFS creates a new OSFS.
func NewOSFS(walker *Walker) *OSFS {
	return &OSFS{walker: walker}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports whether anything exists at path.
func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from module resolution
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating parent directories.
func (o *OSFS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Output files are meant to be world readable
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	return nil
}

// ResetDir removes path and everything below it, then recreates it empty.
func (o *OSFS) ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirFailed.Error()), "path", path)
	}
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirFailed.Error()), "path", path)
	}
	return nil
}

// CopyTree copies every file below src into dst, keeping relative paths.
// Existing files in dst are overwritten.
func (o *OSFS) CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublicCopyFailed.Error()), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("not a directory"), "path", src)
	}

	for path, walkErr := range o.walker.WalkFiles(src) {
		if walkErr != nil {
			return zerr.With(zerr.Wrap(walkErr, domain.ErrPublicCopyFailed.Error()), "path", src)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPublicCopyFailed.Error()), "path", path)
		}
		data, err := o.ReadFile(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPublicCopyFailed.Error()), "path", path)
		}
		if err := o.WriteFile(filepath.Join(dst, rel), data); err != nil {
			return err
		}
	}
	return nil
}
