package logger_adapter

import (
	"fmt"
	"showcase-service/internal/core/port"
)

// TeeLogger дублирует каждую запись во все приемники (stdout и, если включен, Fluent Bit)
type TeeLogger struct {
	sinks []port.LoggerPort
}

// NewTeeLogger пропускает nil-приемники. Если остался один приемник, он и возвращается.
func NewTeeLogger(sinks ...port.LoggerPort) (port.LoggerPort, error) {
	active := make([]port.LoggerPort, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}

	switch len(active) {
	case 0:
		return nil, fmt.Errorf("tee logger: no sinks configured")
	case 1:
		return active[0], nil
	}
	return &TeeLogger{sinks: active}, nil
}

func (t *TeeLogger) each(write func(port.LoggerPort)) {
	for _, s := range t.sinks {
		write(s)
	}
}

func (t *TeeLogger) Info(msg string, fields port.Fields) {
	t.each(func(s port.LoggerPort) { s.Info(msg, fields) })
}

func (t *TeeLogger) Warn(msg string, fields port.Fields) {
	t.each(func(s port.LoggerPort) { s.Warn(msg, fields) })
}

func (t *TeeLogger) Error(msg string, err error, fields port.Fields) {
	t.each(func(s port.LoggerPort) { s.Error(msg, err, fields) })
}

func (t *TeeLogger) Debug(msg string, fields port.Fields) {
	t.each(func(s port.LoggerPort) { s.Debug(msg, fields) })
}

func (t *TeeLogger) WithFields(fields port.Fields) port.LoggerPort {
	enriched := &TeeLogger{sinks: make([]port.LoggerPort, len(t.sinks))}
	for i, s := range t.sinks {
		enriched.sinks[i] = s.WithFields(fields)
	}
	return enriched
}

// Sinks - число приемников (для стартового лога)
func (t *TeeLogger) Sinks() int {
	return len(t.sinks)
}
