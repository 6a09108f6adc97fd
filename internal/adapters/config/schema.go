package config

import "gopkg.in/yaml.v3"

// Bundlerfile represents the structure of a bundler.json or bundler.yaml file.
// Pointer fields distinguish an absent key from an empty value.
type Bundlerfile struct {
	EntryPoint      *string        `yaml:"entryPoint"`
	ProjectRoot     *string        `yaml:"projectRoot"`
	OutputDirectory *string        `yaml:"outputDirectory"`
	PublicDirectory *string        `yaml:"publicDirectory"`
	Extensions      *[]string      `yaml:"extensions"`
	Loaders         yaml.Node      `yaml:"loaders"`
	Transformer     map[string]any `yaml:"transformer"`
	BabelConfig     map[string]any `yaml:"babelConfig"`
	NodeEnv         *string        `yaml:"nodeEnv"`
}

// LoaderDTO is the value of one entry under "loaders".
type LoaderDTO struct {
	Extensions []string `yaml:"extensions"`
}

var knownKeys = map[string]bool{
	"entryPoint":      true,
	"projectRoot":     true,
	"outputDirectory": true,
	"publicDirectory": true,
	"extensions":      true,
	"loaders":         true,
	"transformer":     true,
	"babelConfig":     true,
	"nodeEnv":         true,
	"$schema":         true,
}
