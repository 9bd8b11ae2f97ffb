package logger_adapter

import (
	"log"
	"log/slog"
	"strings"
)

// ParseLogLevel понимает debug/info/warn/error в любом регистре, а также "warning".
// Пустая строка и мусор дают info.
func ParseLogLevel(levelStr string) slog.Level {
	normalized := strings.TrimSpace(levelStr)
	if normalized == "" {
		return slog.LevelInfo
	}
	if strings.EqualFold(normalized, "warning") {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(normalized)); err != nil {
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
	return level
}
