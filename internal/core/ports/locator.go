package ports

import "context"

// DependencyLocator finds where an ecosystem package is installed.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type DependencyLocator interface {
	// Locate returns the package's root directory for a project rooted at root.
	// It returns an error wrapping domain.ErrPackageNotFound when the package is not installed.
	Locate(ctx context.Context, name, root string) (string, error)
}
