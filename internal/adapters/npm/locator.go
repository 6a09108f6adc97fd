// Package npm locates installed packages in a Node.js project.
package npm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyLocator = (*Locator)(nil)

// DefaultCommand is the npm executable looked up on PATH.
const DefaultCommand = "npm"

// Locator implements ports.DependencyLocator. It first walks up from the
// project root looking for node_modules/<name>/package.json and falls back to
// asking npm, which also sees workspace and linked installs.
type Locator struct {
	// Command is the npm executable. Empty disables the npm fallback.
	Command string
}

// NewLocator creates a Locator using npm from PATH.
func NewLocator() *Locator {
	return &Locator{Command: DefaultCommand}
}

// Locate returns the absolute install directory of the named package.
func (l *Locator) Locate(ctx context.Context, name, root string) (string, error) {
	if dir, ok := walkNodeModules(name, root); ok {
		return dir, nil
	}

	if l.Command == "" {
		return "", notFound(name, root)
	}

	return l.askNPM(ctx, name, root)
}

func walkNodeModules(name, root string) (string, bool) {
	current, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(current, domain.NodeModulesDirName, filepath.FromSlash(name))
		if _, err := os.Stat(filepath.Join(candidate, domain.ManifestFileName)); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func (l *Locator) askNPM(ctx context.Context, name, root string) (string, error) {
	//nolint:gosec // name is a package name taken from an import specifier
	cmd := exec.CommandContext(ctx, l.Command, "ls", name, "--parseable", "--prefix", root)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			npmErr := zerr.Wrap(exitErr, domain.ErrPackageNotFound.Error())
			npmErr = zerr.With(npmErr, "package", name)
			npmErr = zerr.With(npmErr, "root", root)
			return "", zerr.With(npmErr, "stderr", stderr)
		}

		npmErr := zerr.Wrap(err, domain.ErrPackageNotFound.Error())
		npmErr = zerr.With(npmErr, "package", name)
		return "", zerr.With(npmErr, "root", root)
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(root, line)
		}
		return line, nil
	}

	return "", notFound(name, root)
}

func notFound(name, root string) error {
	err := zerr.With(domain.ErrPackageNotFound, "package", name)
	return zerr.With(err, "root", root)
}
