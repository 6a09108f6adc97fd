package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error classes. Every build failure is joined with exactly one of these so
// callers can branch with errors.Is.
var (
	// ErrResolution is the class of failures mapping a specifier to a file.
	ErrResolution = zerr.New("resolution failed")

	// ErrLink is the class of failures linking a module against the module table.
	ErrLink = zerr.New("link failed")

	// ErrTransform is the class of failures reported by the source transformer.
	ErrTransform = zerr.New("transform failed")

	// ErrConfig is the class of failures reading or validating the configuration.
	ErrConfig = zerr.New("invalid configuration")

	// ErrBuildFailed is the class of every other failure that aborts a build.
	ErrBuildFailed = zerr.New("build failed")
)

var (
	// ErrNoModuleFound is returned when no file exists for a relative specifier.
	ErrNoModuleFound = zerr.New("no module found")

	// ErrNoEntrypoint is returned when a package has no entry for the requested subpath.
	ErrNoEntrypoint = zerr.New("no entrypoint")

	// ErrPackageNotFound is returned when a package's install location cannot be found.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrManifestNotFound is returned when a package directory has no package.json.
	ErrManifestNotFound = zerr.New("package manifest not found")

	// ErrManifestInvalid is returned when a package.json is not valid JSON.
	ErrManifestInvalid = zerr.New("package manifest is not valid JSON")

	// ErrMissingDependency is returned when a dependency is absent from the module table at link time.
	ErrMissingDependency = zerr.New("no dependency found for path")

	// ErrModuleReadFailed is returned when a module's source cannot be read.
	ErrModuleReadFailed = zerr.New("failed to read module")

	// ErrModuleAlreadyRecorded is returned when a path is added to the module table twice.
	ErrModuleAlreadyRecorded = zerr.New("module already recorded")

	// ErrModuleIDOutOfOrder is returned when a record's id does not follow the last one.
	ErrModuleIDOutOfOrder = zerr.New("module id out of order")

	// ErrModuleTableFrozen is returned when adding to a table handed to the transform phase.
	ErrModuleTableFrozen = zerr.New("module table is frozen")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownLoader is returned when the config names a loader that does not exist.
	ErrUnknownLoader = zerr.New("unknown loader")

	// ErrEmptyEntryPoint is returned when the config has no entry point.
	ErrEmptyEntryPoint = zerr.New("entry point must not be empty")

	// ErrTransformerFailed is returned when the source transformer rejects a module.
	ErrTransformerFailed = zerr.New("source transformer failed")

	// ErrOutputDirFailed is returned when the output directory cannot be reset.
	ErrOutputDirFailed = zerr.New("failed to prepare output directory")

	// ErrArtifactWriteFailed is returned when an emitted file cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrPublicCopyFailed is returned when the public directory cannot be copied.
	ErrPublicCopyFailed = zerr.New("failed to copy public directory")
)

// Classify joins err with an error class unless it already carries one.
func Classify(class, err error) error {
	if err == nil {
		return nil
	}
	for _, c := range []error{ErrResolution, ErrLink, ErrTransform, ErrConfig, ErrBuildFailed} {
		if errors.Is(err, c) {
			return err
		}
	}
	return errors.Join(class, err)
}
