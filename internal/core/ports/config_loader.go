package ports

import "go.trai.ch/pack/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the given working directory and merges it over
	// domain.DefaultConfig. An empty path looks up the default config file names in cwd;
	// when none exists the defaults are returned unchanged.
	Load(cwd, path string) (*domain.Config, error)
}
