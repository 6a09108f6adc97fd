package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/pack/internal/ui/output"
	"go.trai.ch/pack/internal/ui/style"
)

// ConsoleHandler is a slog.Handler for terminals. Each record becomes one
// line: a level marker, the message, then key=value pairs. Keys are
// qualified by the groups open when the attribute was added.
type ConsoleHandler struct {
	out      *termenv.Output
	minLevel slog.Leveler
	bound    []string
	groups   []string
}

// NewConsoleHandler creates a ConsoleHandler writing to w, or to stderr
// when w is nil.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if w == nil {
		w = os.Stderr
	}

	var minLevel slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		minLevel = opts.Level
	}

	return &ConsoleHandler{out: output.New(w), minLevel: minLevel}
}

// Enabled reports whether records at level are written.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel.Level()
}

// Handle writes r as a single colored line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	marker, color := decorate(r.Level)
	if marker != "" {
		line.WriteString(marker + " ")
	}
	line.WriteString(r.Message)

	pairs := slices.Clip(h.bound)
	r.Attrs(func(a slog.Attr) bool {
		pairs = appendPairs(pairs, h.groups, a)
		return true
	})
	for _, p := range pairs {
		line.WriteString(" " + p)
	}

	colored := h.out.String(line.String()).Foreground(color)
	_, err := h.out.WriteString(colored.String() + "\n")
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		next.bound = appendPairs(next.bound, h.groups, a)
	}
	return next
}

// WithGroup returns a handler that qualifies later attributes with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		out:      h.out,
		minLevel: h.minLevel,
		bound:    slices.Clip(h.bound),
		groups:   slices.Clip(h.groups),
	}
}

func decorate(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Iris))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// appendPairs renders a as key=value, expanding group values. Empty
// attributes are dropped, as slog requires.
func appendPairs(pairs, groups []string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return pairs
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(slices.Clip(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			pairs = appendPairs(pairs, inner, ga)
		}
		return pairs
	}
	key := strings.Join(append(slices.Clip(groups), a.Key), ".")
	return append(pairs, key+"="+a.Value.String())
}
