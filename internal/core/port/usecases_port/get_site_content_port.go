package usecases_port

import (
	"context"
	"showcase-service/internal/core/domain"
)

type GetSiteContentUseCase interface {
	Execute(ctx context.Context) (*domain.SiteContent, error)
}
