package logging

import (
	"context"
	"errors"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// teeHandler sends every record to the console handler and, as JSON lines,
// to the rotating log file. Each side keeps its own level and format.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

// withFile wraps console so records are also appended to the file cfg names.
// A disabled or pathless FileConfig returns console unchanged.
func withFile(console slog.Handler, cfg FileConfig, opts *slog.HandlerOptions) slog.Handler {
	if !cfg.Enabled || cfg.Path == "" {
		return console
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return &teeHandler{console: console, file: slog.NewJSONHandler(rotator, opts)}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

//nolint:gocritic // slog.Handler passes records by value
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	if h.console.Enabled(ctx, r.Level) {
		errs = append(errs, h.console.Handle(ctx, r.Clone()))
	}

	// the file is the durable copy; a broken terminal must not drop it
	if h.file.Enabled(ctx, r.Level) {
		errs = append(errs, h.file.Handle(ctx, r))
	}

	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}
