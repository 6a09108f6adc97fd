package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pack/internal/adapters/logger"
)

func TestConsoleHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{
			name: "bound attrs stay outside later groups",
			log: func(l *slog.Logger) {
				l.With("phase", "graph").WithGroup("mod").Info("done", "count", 2)
			},
			want: "done phase=graph mod.count=2\n",
		},
		{
			name: "nested groups",
			log: func(l *slog.Logger) {
				l.WithGroup("build").WithGroup("mod").Info("linked", "id", 3)
			},
			want: "linked build.mod.id=3\n",
		},
		{
			name: "group values expand",
			log: func(l *slog.Logger) {
				l.Info("emitted", slog.Group("asset", "ext", ".png", "size", 3))
			},
			want: "emitted asset.ext=.png asset.size=3\n",
		},
		{
			name: "empty attrs dropped",
			log: func(l *slog.Logger) {
				l.Info("ok", slog.Attr{}, "k", "v")
			},
			want: "ok k=v\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(logger.NewConsoleHandler(&buf, nil)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleHandler_Level(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	l := slog.New(logger.NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l.Debug("scan")
	l.Info("start")
	l.Warn("slow")
	l.Error("failed")

	assert.Equal(t, "· scan\nstart\n! slow\n✗ failed\n", buf.String())
}

func TestConsoleHandler_MinLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	h := logger.NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.New(h).Info("skipped")
	slog.New(h).Warn("kept")

	assert.Equal(t, "! kept\n", buf.String())
}
