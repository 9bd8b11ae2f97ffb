package usecase

import (
	"context"
	"fmt"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	catalog port.CatalogPort
	content port.ContentPort
}

func NewGetPropertyDetailsUseCase(catalog port.CatalogPort, content port.ContentPort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{catalog: catalog, content: content}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, index int) (*domain.PropertyDetailsView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "GetPropertyDetails",
		"building_index": index,
	})

	ucLogger.Debug("Use case started", nil)

	if index < 0 {
		ucLogger.Warn("Negative building index requested", nil)
		return nil, fmt.Errorf("%w: index %d", domain.ErrPropertyNotFound, index)
	}

	property, err := uc.catalog.PropertyAt(ctx, index)
	if err != nil {
		ucLogger.Warn("Catalog lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	media, err := uc.content.PropertyMedia(ctx, *property)
	if err != nil {
		ucLogger.Error("Failed to load property media", err, nil)
		return nil, fmt.Errorf("failed to load media for building %d: %w", index, err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"title": property.Title})

	return &domain.PropertyDetailsView{
		Index:    index,
		Property: *property,
		Media:    *media,
	}, nil
}
