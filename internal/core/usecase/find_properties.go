package usecase

import (
	"context"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

type FindPropertiesUseCase struct {
	catalog port.CatalogPort
}

func NewFindPropertiesUseCase(catalog port.CatalogPort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{catalog: catalog}
}

// Execute возвращает подпоследовательность каталога, прошедшую оба фильтра.
// Пустой результат - нормальная ситуация, не ошибка.
func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters) ([]domain.IndexedProperty, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"filters":  filters,
	})

	ucLogger.Debug("Use case started", nil)

	catalog, err := uc.catalog.ListProperties(ctx)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, err
	}

	result := domain.FilterProperties(catalog, filters)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalog_size": len(catalog),
		"total_found":  len(result),
	})

	return result, nil
}
