package constants

import "time"

const (
	// SessionCookieName - cookie с идентификатором посетителя
	SessionCookieName = "lb_session"
	SessionCookieTTL  = 30 * 24 * time.Hour

	TraceIDHeader = "X-Trace-ID"

	APIPrefix = "/api/v1"

	// SSEKeepAliveInterval - как часто слать комментарий в открытый SSE-поток
	SSEKeepAliveInterval = 15 * time.Second
)
