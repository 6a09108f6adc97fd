// Package config provides the configuration loader for pack.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for bundler.json and bundler.yaml files.
// JSON is a subset of YAML, so both go through the same decoder.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the defaults merged with the config file. An explicit path is
// taken relative to cwd and must exist. Without one, the config file names are
// tried in cwd and the defaults are used when none exists.
// ProjectRoot and OutputDirectory are made absolute against cwd.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	configPath, err := l.findConfiguration(cwd, path)
	if err != nil {
		return nil, domain.Classify(domain.ErrConfig, err)
	}

	if configPath != "" {
		if err := l.merge(&cfg, configPath); err != nil {
			return nil, domain.Classify(domain.ErrConfig, zerr.With(err, "config", configPath))
		}
	}

	if cfg.EntryPoint == "" {
		return nil, domain.Classify(domain.ErrConfig, zerr.With(domain.ErrEmptyEntryPoint, "config", configPath))
	}

	cfg.ProjectRoot = absolute(cwd, cfg.ProjectRoot)
	cfg.OutputDirectory = absolute(cwd, cfg.OutputDirectory)

	return &cfg, nil
}

func (l *Loader) findConfiguration(cwd, path string) (string, error) {
	if path != "" {
		configPath := absolute(cwd, path)
		if _, err := os.Stat(configPath); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "config", configPath)
		}
		return configPath, nil
	}

	for _, name := range domain.ConfigFileNames() {
		candidate := filepath.Join(cwd, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "config", candidate)
		}
	}

	return "", nil
}

func (l *Loader) merge(cfg *domain.Config, configPath string) error {
	// #nosec G304 -- path is the user's config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if filepath.Ext(configPath) == ".json" {
		// Valid JSON only carries tabs as whitespace, which YAML rejects as indentation.
		data = bytes.ReplaceAll(data, []byte("\t"), []byte(" "))
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return zerr.With(domain.ErrConfigParseFailed, "line", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if key := root.Content[i].Value; !knownKeys[key] {
			l.Logger.Warn(fmt.Sprintf("unknown key %q in %s is ignored", key, filepath.Base(configPath)))
		}
	}

	var file Bundlerfile
	if err := root.Decode(&file); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return l.apply(cfg, &file, filepath.Base(configPath))
}

func (l *Loader) apply(cfg *domain.Config, file *Bundlerfile, name string) error {
	setString(&cfg.EntryPoint, file.EntryPoint)
	setString(&cfg.ProjectRoot, file.ProjectRoot)
	setString(&cfg.OutputDirectory, file.OutputDirectory)
	setString(&cfg.PublicDirectory, file.PublicDirectory)
	setString(&cfg.NodeEnv, file.NodeEnv)

	if file.Extensions != nil {
		cfg.Extensions = *file.Extensions
	}

	if file.Loaders.Kind != 0 {
		claims, err := decodeLoaders(&file.Loaders)
		if err != nil {
			return err
		}
		cfg.Loaders = claims
	}

	switch {
	case file.Transformer != nil:
		if file.BabelConfig != nil {
			l.Logger.Warn(fmt.Sprintf("both 'transformer' and 'babelConfig' are set in %s, using 'transformer'", name))
		}
		cfg.Transformer = file.Transformer
	case file.BabelConfig != nil:
		cfg.Transformer = file.BabelConfig
	}

	return nil
}

// decodeLoaders keeps declaration order, which decides overlapping claims.
// Each value is either {extensions: [...]} or the extension list itself.
func decodeLoaders(node *yaml.Node) ([]domain.LoaderClaim, error) {
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.New("loaders must be a mapping"), "line", node.Line)
	}

	claims := make([]domain.LoaderClaim, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]

		if _, ok := domain.ParseLoaderKind(name); !ok {
			return nil, zerr.With(domain.ErrUnknownLoader, "loader", name)
		}

		var extensions []string
		switch value.Kind {
		case yaml.SequenceNode:
			if err := value.Decode(&extensions); err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "loader", name)
			}
		default:
			var dto LoaderDTO
			if err := value.Decode(&dto); err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "loader", name)
			}
			extensions = dto.Extensions
		}

		claims = append(claims, domain.LoaderClaim{Name: name, Extensions: extensions})
	}
	return claims, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func absolute(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
