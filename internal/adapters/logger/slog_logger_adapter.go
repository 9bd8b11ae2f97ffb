package logger_adapter

import (
	"context"
	"io"
	"log/slog"
	"os"
	"showcase-service/internal/core/port"
	"sort"

	"github.com/lmittmann/tint"
)

// SlogAdapter пишет в stdout через slog: JSON для сборщика логов,
// цветной tint для локальной разработки, обычный текст в остальных случаях.
type SlogAdapter struct {
	logger *slog.Logger
}

type SlogConfig struct {
	Writer    io.Writer    // по умолчанию os.Stdout
	Level     slog.Leveler // по умолчанию slog.LevelInfo
	AddSource bool
	IsJSON    bool
	UseColor  bool // учитывается, только если IsJSON == false
}

func newSlogHandler(cfg SlogConfig) slog.Handler {
	switch {
	case cfg.IsJSON:
		return slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{AddSource: cfg.AddSource, Level: cfg.Level})
	case cfg.UseColor:
		return tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	default:
		return slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{AddSource: cfg.AddSource, Level: cfg.Level})
	}
}

func NewSlogAdapter(cfg SlogConfig) port.LoggerPort {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}
	return &SlogAdapter{logger: slog.New(newSlogHandler(cfg))}
}

// attrs переводит port.Fields в аргументы slog в порядке ключей,
// чтобы одна и та же запись всегда выглядела одинаково
func attrs(fields port.Fields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

func (a *SlogAdapter) log(level slog.Level, msg string, fields port.Fields) {
	a.logger.Log(context.Background(), level, msg, attrs(fields)...)
}

func (a *SlogAdapter) Debug(msg string, fields port.Fields) { a.log(slog.LevelDebug, msg, fields) }
func (a *SlogAdapter) Info(msg string, fields port.Fields)  { a.log(slog.LevelInfo, msg, fields) }
func (a *SlogAdapter) Warn(msg string, fields port.Fields)  { a.log(slog.LevelWarn, msg, fields) }

func (a *SlogAdapter) Error(msg string, err error, fields port.Fields) {
	args := attrs(fields)
	if err != nil {
		args = append(args, tint.Err(err))
	}
	a.logger.Log(context.Background(), slog.LevelError, msg, args...)
}

func (a *SlogAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &SlogAdapter{logger: a.logger.With(attrs(fields)...)}
}
