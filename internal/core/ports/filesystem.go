package ports

import "io/fs"

// FileSystem is the I/O boundary of the engine.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// Exists reports whether anything exists at path.
	Exists(path string) bool
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to path, creating parent directories.
	WriteFile(path string, data []byte) error
	// ResetDir removes path and everything below it, then recreates it empty.
	ResetDir(path string) error
	// CopyTree copies every file below src into dst, keeping relative paths.
	CopyTree(src, dst string) error
}
