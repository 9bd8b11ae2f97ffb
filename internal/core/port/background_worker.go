package port

import "context"

// BackgroundWorkerPort - фоновый процесс, который живет столько же, сколько приложение.
// Start блокируется до отмены контекста.
type BackgroundWorkerPort interface {
	Start(ctx context.Context) error
	Close() error
}
