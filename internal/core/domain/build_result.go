package domain

import "time"

// BuildResult summarizes a finished build.
type BuildResult struct {
	// Modules is the number of modules in the bundle.
	Modules int
	// ArtifactPath is the path of the written bundle.
	ArtifactPath string
	// ArtifactSize is the bundle size in bytes.
	ArtifactSize int
	// Digest is the xxhash of the bundle, hex encoded.
	Digest string
	// Duration is the wall time of the build.
	Duration time.Duration
}
