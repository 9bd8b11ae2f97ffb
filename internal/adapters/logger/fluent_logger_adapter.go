package logger_adapter

import (
	"fmt"
	"log/slog"
	"showcase-service/internal/core/port"
	"time"
)

// FluentPoster - та часть *fluent.Fluent, которая нужна адаптеру
type FluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentLoggerAdapter отправляет записи в Fluent Bit с тегом <префикс>.<уровень>.
// Ошибки отправки игнорируются: недоступный Fluent Bit не должен ломать сайт.
type FluentLoggerAdapter struct {
	client   FluentPoster
	fields   port.Fields
	minLevel slog.Level
}

func NewFluentLoggerAdapter(client FluentPoster, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}
	adapter := &FluentLoggerAdapter{client: client, fields: port.Fields{}, minLevel: slog.LevelInfo}
	if minLevel != nil {
		adapter.minLevel = minLevel.Level()
	}
	return adapter, nil
}

// record собирает новую карту: поля адаптера, затем поля вызова
func (a *FluentLoggerAdapter) record(fields port.Fields) port.Fields {
	out := make(port.Fields, len(a.fields)+len(fields)+3)
	for _, src := range []port.Fields{a.fields, fields} {
		for k, v := range src {
			out[k] = v
		}
	}
	return out
}

var fluentTags = map[slog.Level]string{
	slog.LevelDebug: "debug",
	slog.LevelInfo:  "info",
	slog.LevelWarn:  "warn",
	slog.LevelError: "error",
}

func (a *FluentLoggerAdapter) emit(level slog.Level, msg string, err error, fields port.Fields) {
	if level < a.minLevel {
		return
	}
	data := a.record(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	tag := fluentTags[level]
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	_ = a.client.Post(tag, data)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.emit(slog.LevelDebug, msg, nil, fields)
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.emit(slog.LevelInfo, msg, nil, fields)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.emit(slog.LevelWarn, msg, nil, fields)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	a.emit(slog.LevelError, msg, err, fields)
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{client: a.client, fields: a.record(fields), minLevel: a.minLevel}
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
