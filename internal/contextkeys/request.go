package contextkeys

import "context"

// key - ключ значения запроса. Сравнивается по указателю, поэтому пересечься
// с ключами других пакетов не может.
type key struct{ name string }

func (k *key) String() string { return "contextkeys." + k.name }

var (
	traceIDKey   = &key{"trace_id"}
	sessionIDKey = &key{"session_id"}
	loggerKey    = &key{"logger"}
)

func stringValue(ctx context.Context, k *key) string {
	v, _ := ctx.Value(k).(string)
	return v
}

// ContextWithTraceID кладет trace_id запроса (заголовок X-Trace-ID)
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает "", если запрос пришел не через LoggerMiddleware
func TraceIDFromContext(ctx context.Context) string {
	return stringValue(ctx, traceIDKey)
}

// ContextWithSessionID кладет идентификатор посетителя из cookie
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	return stringValue(ctx, sessionIDKey)
}
