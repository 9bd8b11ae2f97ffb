package rest

import (
	"net/http"
	"showcase-service/internal/constants"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// requestTraceID берет X-Trace-ID клиента, если это UUID, иначе выдает новый
func requestTraceID(r *http.Request) string {
	if parsed, err := uuid.Parse(r.Header.Get(constants.TraceIDHeader)); err == nil {
		return parsed.String()
	}
	return uuid.New().String()
}

// LoggerMiddleware кладет в контекст trace_id и логгер запроса, а по завершении
// пишет итоговую строку. Уровень зависит от статуса ответа.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := requestTraceID(r)
			w.Header().Set(constants.TraceIDHeader, traceID)

			requestLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			ctx := contextkeys.ContextWithTraceID(r.Context(), traceID)
			ctx = contextkeys.ContextWithLogger(ctx, requestLogger)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := port.Fields{
				"http_method":   r.Method,
				"http_path":     r.URL.Path,
				"remote_addr":   r.RemoteAddr,
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(started).Milliseconds(),
			}
			switch status := ww.Status(); {
			case status >= http.StatusInternalServerError:
				requestLogger.Error("Request failed", nil, fields)
			case status >= http.StatusBadRequest:
				requestLogger.Warn("Request rejected", fields)
			default:
				requestLogger.Info("Request finished", fields)
			}
		})
	}
}
