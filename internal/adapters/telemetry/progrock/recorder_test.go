package progrock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/pack/internal/adapters/telemetry/progrock"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, progrock.New())
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "transform /src/index.js")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	vertex.Log(domain.LogLevelWarn, "warn msg")
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Log(domain.LogLevelError, "error msg")
	vertex.Complete(errors.New("failed"))

	_, internal := recorder.Record(context.Background(), "runtime", ports.WithInternal())
	internal.Cached()
	internal.Complete(nil)

	assert.NoError(t, recorder.Close())
}

func TestRecorder_ReadStream(t *testing.T) {
	recorder := progrock.New()

	_, vertex := recorder.Record(context.Background(), "resolve graph")
	vertex.Complete(nil)
	require.NoError(t, recorder.Close())

	var names []string
	for {
		update, err := recorder.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		for _, v := range update.Vertexes {
			names = append(names, v.Name)
		}
	}

	assert.Contains(t, names, "resolve graph")
}

func TestRecorder_ReadOtherWriter(t *testing.T) {
	recorder := progrock.NewRecorder(vprogrock.NewTape())

	_, err := recorder.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStream_CloseIdempotent(t *testing.T) {
	s := progrock.NewStream()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, s.WriteStatus(&vprogrock.StatusUpdate{}), io.ErrClosedPipe)
}

func TestRecorder_LogAndCached(t *testing.T) {
	recorder := progrock.New()

	_, emit := recorder.Record(context.Background(), "emit /src/logo.png", ports.WithInternal())
	emit.Cached()
	emit.Complete(nil)

	_, transform := recorder.Record(context.Background(), "transform /src/a.js", ports.WithInternal())
	transform.Log(domain.LogLevelWarn, "/src/a.js:1:9: duplicate key")
	transform.Complete(nil)
	require.NoError(t, recorder.Close())

	var logs []string
	cached := map[string]bool{}
	for {
		update, err := recorder.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		for _, l := range update.Logs {
			logs = append(logs, string(l.Data))
		}
		for _, v := range update.Vertexes {
			cached[v.Name] = cached[v.Name] || v.Cached
		}
	}

	assert.Contains(t, logs, "[warn] /src/a.js:1:9: duplicate key\n")
	assert.True(t, cached["emit /src/logo.png"])
	assert.False(t, cached["transform /src/a.js"])
}
