package usecases_port

import (
	"context"
	"showcase-service/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.PropertyFilters) ([]domain.IndexedProperty, error)
}
