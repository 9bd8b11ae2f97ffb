package port

import (
	"context"
	"showcase-service/internal/core/domain"
)

// TourSessionKey - мастер живет отдельно для каждого посетителя и каждого объекта
type TourSessionKey struct {
	SessionID     string
	BuildingIndex int
}

// TourSessionStoragePort хранит незавершенные мастера записи на просмотр.
// Хранилище обязано отдавать копию: изменения вступают в силу только после Save.
type TourSessionStoragePort interface {
	Get(ctx context.Context, key TourSessionKey) (*domain.TourWizard, bool, error)
	Save(ctx context.Context, key TourSessionKey, wizard *domain.TourWizard) error
	Delete(ctx context.Context, key TourSessionKey) error
}
