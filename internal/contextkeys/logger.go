package contextkeys

import (
	"context"
	"showcase-service/internal/core/port"
)

// ContextWithLogger - логгер запроса уже содержит trace_id и session_id
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext вне HTTP-запроса (фоновые задачи, тесты) отдает логгер, который ничего не пишет
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return discard{}
}

type discard struct{}

func (discard) Info(string, port.Fields)                 {}
func (discard) Warn(string, port.Fields)                 {}
func (discard) Error(string, error, port.Fields)         {}
func (discard) Debug(string, port.Fields)                {}
func (d discard) WithFields(port.Fields) port.LoggerPort { return d }
