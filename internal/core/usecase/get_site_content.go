package usecase

import (
	"context"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

type GetSiteContentUseCase struct {
	content port.ContentPort
}

func NewGetSiteContentUseCase(content port.ContentPort) *GetSiteContentUseCase {
	return &GetSiteContentUseCase{content: content}
}

func (uc *GetSiteContentUseCase) Execute(ctx context.Context) (*domain.SiteContent, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetSiteContent"})

	content, err := uc.content.SiteContent(ctx)
	if err != nil {
		logger.Error("Content source returned an error", err, nil)
		return nil, err
	}

	return content, nil
}
