package esbuild_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/esbuild"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

func transform(t *testing.T, path, code string, opts domain.TransformerOptions) (string, error) {
	t.Helper()
	return esbuild.New().Transform(context.Background(), ports.TransformRequest{
		Path:    path,
		Code:    code,
		Options: opts,
	})
}

func TestTransformer_TypeScriptToCommonJS(t *testing.T) {
	out, err := transform(t, "/src/a.ts", "const n: number = 1;\nexport default n;\n", domain.DefaultConfig().Transformer)
	require.NoError(t, err)

	assert.NotContains(t, out, ": number")
	assert.Contains(t, out, "module.exports")
}

func TestTransformer_ImportsBecomeRequires(t *testing.T) {
	out, err := transform(t, "/src/index.js", "import x from './x';\nconsole.log(x);\n", domain.DefaultConfig().Transformer)
	require.NoError(t, err)

	assert.Contains(t, out, `require("./x")`)
}

func TestTransformer_JSXFactory(t *testing.T) {
	opts := domain.TransformerOptions{"jsxFactory": "h", "format": "cjs"}
	out, err := transform(t, "/src/view.jsx", "const v = <div/>;\n", opts)
	require.NoError(t, err)

	assert.Contains(t, out, `h("div"`)
}

func TestTransformer_Define(t *testing.T) {
	opts := domain.TransformerOptions{"define": map[string]any{"__DEV__": "false"}}
	out, err := transform(t, "/src/a.js", "if (__DEV__) { log(); }\n", opts)
	require.NoError(t, err)

	assert.NotContains(t, out, "__DEV__")
}

func TestTransformer_SyntaxError(t *testing.T) {
	_, err := transform(t, "/src/broken.js", "const = ;", nil)
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrTransform))
	assert.Contains(t, err.Error(), domain.ErrTransformerFailed.Error())
}

func TestTransformer_InvalidOption(t *testing.T) {
	_, err := transform(t, "/src/a.js", "1;", domain.TransformerOptions{"target": "es1999"})
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrTransform))
}

func TestTransformer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := esbuild.New().Transform(ctx, ports.TransformRequest{Path: "/a.js", Code: "1;"})
	assert.ErrorIs(t, err, context.Canceled)
}

type logLine struct {
	level domain.LogLevel
	msg   string
}

type logVertex struct {
	lines []logLine
}

func (v *logVertex) Log(level domain.LogLevel, msg string) {
	v.lines = append(v.lines, logLine{level: level, msg: msg})
}

func (v *logVertex) Complete(error) {}

func (v *logVertex) Cached() {}

func TestTransformer_WarningsGoToVertex(t *testing.T) {
	vertex := &logVertex{}
	ctx := ports.ContextWithVertex(context.Background(), vertex)

	out, err := esbuild.New().Transform(ctx, ports.TransformRequest{
		Path:    "/src/dup.js",
		Code:    "module.exports = {a: 1, a: 2};\n",
		Options: domain.DefaultConfig().Transformer,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "module.exports")

	require.Len(t, vertex.lines, 1)
	assert.Equal(t, domain.LogLevelWarn, vertex.lines[0].level)
	assert.Contains(t, vertex.lines[0].msg, "/src/dup.js:1:")
	assert.Contains(t, vertex.lines[0].msg, `Duplicate key "a"`)
}

func TestTransformer_NoWarningsWithoutVertex(t *testing.T) {
	out, err := transform(t, "/src/dup.js", "module.exports = {a: 1, a: 2};\n", domain.DefaultConfig().Transformer)
	require.NoError(t, err)
	assert.Contains(t, out, "module.exports")
}
