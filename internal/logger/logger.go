// SPDX-License-Identifier: EPL-2.0

// Package logger builds the slog loggers used by the wavcue command, with a
// JSON handler for machines and a colored line handler for terminals.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON = "json"
	// FormatPretty writes colored single-line records.
	FormatPretty = "pretty"
)

const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
)

var levelStyle = map[slog.Level]struct{ tag, color string }{
	slog.LevelDebug: {"DBG", "\033[35m"},
	slog.LevelInfo:  {"INF", "\033[32m"},
	slog.LevelWarn:  {"WRN", "\033[33m"},
	slog.LevelError: {"ERR", "\033[31m"},
}

// Logger wraps slog.Logger with a few helpers.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Writer    io.Writer
	Format    string
	Level     slog.Level
	AddSource bool
	// NoColor drops ANSI escapes from the pretty format.
	NoColor bool
}

// New creates a logger writing to cfg.Writer, stderr when nil. An empty
// Format selects the pretty handler.
func New(cfg Config) *Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	if strings.EqualFold(cfg.Format, FormatJSON) {
		return &Logger{Logger: slog.New(slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if src, ok := a.Value.Any().(*slog.Source); ok && a.Key == slog.SourceKey {
					src.File = filepath.Base(src.File)
				}
				return a
			},
		}))}
	}

	return &Logger{Logger: slog.New(&PrettyHandler{
		out:    &lockedWriter{w: cfg.Writer},
		level:  cfg.Level,
		color:  !cfg.NoColor,
		source: cfg.AddSource,
	})}
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds an error attribute. A nil error returns l unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{Logger: l.With(slog.String("error", err.Error()))}
}

// WithFile adds the file being worked on.
func (l *Logger) WithFile(path string) *Logger {
	return &Logger{Logger: l.With(slog.String("file", path))}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// PrettyHandler writes one line per record:
//
//	15:04:05 INF message key=value group.key=value
type PrettyHandler struct {
	out    *lockedWriter
	level  slog.Leveler
	color  bool
	source bool
	prefix string
	attrs  string
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) paint(sb *strings.Builder, color, s string) {
	if h.color {
		sb.WriteString(color)
		sb.WriteString(s)
		sb.WriteString(colorReset)
		return
	}
	sb.WriteString(s)
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		h.paint(&sb, colorDim, r.Time.Format(time.TimeOnly))
		sb.WriteByte(' ')
	}

	style, ok := levelStyle[r.Level]
	if !ok {
		style.tag, style.color = r.Level.String(), colorDim
	}
	h.paint(&sb, style.color, style.tag)
	sb.WriteByte(' ')

	if h.source && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		h.paint(&sb, colorDim, fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line))
		sb.WriteByte(' ')
	}

	h.paint(&sb, colorBold, r.Message)

	attrs := h.attrs
	r.Attrs(func(a slog.Attr) bool {
		attrs += h.format(a)
		return true
	})
	if attrs != "" {
		h.paint(&sb, colorCyan, attrs)
	}

	sb.WriteByte('\n')
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// format renders " key=value" with the group prefix applied.
func (h *PrettyHandler) format(a slog.Attr) string {
	v := a.Value.Resolve()
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().Format(time.RFC3339)
	default:
		s = v.String()
	}
	return " " + h.prefix + a.Key + "=" + s
}

// WithAttrs returns a handler that writes attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	for _, a := range attrs {
		clone.attrs += h.format(a)
	}
	return &clone
}

// WithGroup returns a handler that prefixes later keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix += name + "."
	return &clone
}
