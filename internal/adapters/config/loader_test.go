package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/config"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Equal(t, def.EntryPoint, cfg.EntryPoint)
	assert.Equal(t, cwd, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(cwd, "dist"), cfg.OutputDirectory)
	assert.Equal(t, "public", cfg.PublicDirectory)
	assert.Equal(t, def.Extensions, cfg.Extensions)
	assert.Equal(t, def.Loaders, cfg.Loaders)
	assert.Equal(t, "PRODUCTION", cfg.NodeEnv)
}

func TestLoader_Load_JSONMergesKeyByKey(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()
	createFile(t, cwd, domain.JSONConfigFileName, `{
	"entryPoint": "app/main.ts",
	"extensions": [".ts"],
	"outputDirectory": "build"
}`)

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	assert.Equal(t, "app/main.ts", cfg.EntryPoint)
	assert.Equal(t, []string{".ts"}, cfg.Extensions)
	assert.Equal(t, filepath.Join(cwd, "build"), cfg.OutputDirectory)
	assert.Equal(t, "public", cfg.PublicDirectory)
	assert.Equal(t, domain.DefaultConfig().Loaders, cfg.Loaders)
}

func TestLoader_Load_LoaderOrderIsKept(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()
	createFile(t, cwd, domain.YAMLConfigFileName, `
loaders:
  css:
    extensions: [".css", ".svg"]
  asset: [".svg", ".png"]
`)

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	require.Len(t, cfg.Loaders, 2)
	assert.Equal(t, domain.LoaderClaim{Name: "css", Extensions: []string{".css", ".svg"}}, cfg.Loaders[0])
	assert.Equal(t, domain.LoaderClaim{Name: "asset", Extensions: []string{".svg", ".png"}}, cfg.Loaders[1])
	assert.Equal(t, domain.LoaderStylesheet, cfg.LoaderFor("/x/logo.svg"))
}

func TestLoader_Load_UnknownLoader(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()
	createFile(t, cwd, domain.JSONConfigFileName, `{"loaders": {"wasm": {"extensions": [".wasm"]}}}`)

	_, err := loader.Load(cwd, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
	assert.Contains(t, err.Error(), domain.ErrUnknownLoader.Error())
}

func TestLoader_Load_BabelConfigAlias(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()
	createFile(t, cwd, domain.JSONConfigFileName, `{"babelConfig": {"target": "es2020"}, "nodeEnv": "development"}`)

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	target, ok := cfg.Transformer.String("target")
	assert.True(t, ok)
	assert.Equal(t, "es2020", target)
	_, hasFormat := cfg.Transformer.String("format")
	assert.False(t, hasFormat, "transformer is replaced as a whole")
	assert.Equal(t, "development", cfg.NodeEnv)
}

func TestLoader_Load_TransformerWinsOverAlias(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	cwd := t.TempDir()
	createFile(t, cwd, domain.JSONConfigFileName, `{"babelConfig": {"target": "es5"}, "transformer": {"target": "esnext"}}`)

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	target, _ := cfg.Transformer.String("target")
	assert.Equal(t, "esnext", target)
}

func TestLoader_Load_UnknownKeyWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	cwd := t.TempDir()
	createFile(t, cwd, domain.JSONConfigFileName, `{"minify": true}`)

	_, err := loader.Load(cwd, "")
	require.NoError(t, err)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "conf"), domain.DirPerm))
	createFile(t, filepath.Join(cwd, "conf"), "custom.yml", "entryPoint: web/index.jsx\nprojectRoot: web\n")

	cfg, err := loader.Load(cwd, filepath.Join("conf", "custom.yml"))
	require.NoError(t, err)

	assert.Equal(t, "web/index.jsx", cfg.EntryPoint)
	assert.Equal(t, filepath.Join(cwd, "web"), cfg.ProjectRoot)
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		loader, _ := newLoader(t)
		_, err := loader.Load(t.TempDir(), "nope.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfig))
		assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
	})

	t.Run("malformed file", func(t *testing.T) {
		loader, _ := newLoader(t)
		cwd := t.TempDir()
		createFile(t, cwd, domain.JSONConfigFileName, `{"entryPoint": [`)

		_, err := loader.Load(cwd, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfig))
		assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
	})

	t.Run("empty entry point", func(t *testing.T) {
		loader, _ := newLoader(t)
		cwd := t.TempDir()
		createFile(t, cwd, domain.JSONConfigFileName, `{"entryPoint": ""}`)

		_, err := loader.Load(cwd, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfig))
	})
}
