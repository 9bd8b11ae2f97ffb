package usecases_port

import (
	"context"
	"showcase-service/internal/core/domain"
)

type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, index int) (*domain.PropertyDetailsView, error)
}
