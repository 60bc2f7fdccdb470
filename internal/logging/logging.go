// Package logging builds the slog loggers used by the raster tools.
//
// Attributes added to a context with AppendCtx are emitted by every record
// logged through that context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel = "RASTER_MCP_LOG_LEVEL"
	EnvFile  = "RASTER_MCP_LOG_FILE"
	EnvJSON  = "RASTER_MCP_LOG_JSON"
)

type ctxKey struct{}

// ContextHandler adds the attributes stored by AppendCtx to each record.
type ContextHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx returns a child of parent carrying attrs in addition to any
// attributes already stored there.
func AppendCtx(parent context.Context, attrs ...slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	var merged []slog.Attr
	if prev, ok := parent.Value(ctxKey{}).([]slog.Attr); ok {
		merged = append(merged, prev...)
	}
	merged = append(merged, attrs...)
	return context.WithValue(parent, ctxKey{}, merged)
}

// Logger returns a text or JSON logger writing to w at the given level.
func Logger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(ContextHandler{h})
}

// ParseLevel maps DEBUG, INFO, WARN or ERROR (any case) to a level. The
// second result is false, and the level INFO, for anything else.
func ParseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

// Config selects the destination and shape of log output.
type Config struct {
	Level slog.Level
	// File, when set, receives the log through a size-rotated writer
	// instead of stderr.
	File string
	JSON bool

	MaxSizeMB  int
	MaxBackups int
}

// ConfigFromEnv reads the RASTER_MCP_LOG_* variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:      slog.LevelInfo,
		File:       os.Getenv(EnvFile),
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level, _ = ParseLevel(v)
	}
	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON, _ = strconv.ParseBool(v)
	}
	return cfg
}

// Writer returns the destination named by cfg. The caller closes it when
// it is a file.
func (cfg Config) Writer() io.WriteCloser {
	if cfg.File == "" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
}

// New builds the logger described by cfg together with its writer.
func New(cfg Config) (*slog.Logger, io.Closer) {
	w := cfg.Writer()
	return Logger(w, cfg.JSON, cfg.Level), w
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
