package usecases_port

import (
	"context"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

// ScheduleTourUseCase - переходы мастера записи на просмотр
type ScheduleTourUseCase interface {
	// Open возвращает текущее состояние мастера или новый мастер на первом шаге
	Open(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, error)
	ChooseType(ctx context.Context, key port.TourSessionKey, tourType string) (*domain.TourWizard, error)
	Back(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, error)
	Submit(ctx context.Context, key port.TourSessionKey, form domain.TourForm) (*domain.TourWizard, error)
	Close(ctx context.Context, key port.TourSessionKey) error
}
