package port

import (
	"context"
	"showcase-service/internal/core/domain"
)

// CatalogPort - источник записей каталога. Порядок записей значим:
// индекс записи и есть ее идентификатор в маршруте /building/{index}.
type CatalogPort interface {
	ListProperties(ctx context.Context) ([]domain.Property, error)
	// PropertyAt возвращает domain.ErrPropertyNotFound, если индекс вне каталога
	PropertyAt(ctx context.Context, index int) (*domain.Property, error)
}

// ContentPort - статические тексты и медиа сайта
type ContentPort interface {
	SiteContent(ctx context.Context) (*domain.SiteContent, error)
	PropertyMedia(ctx context.Context, property domain.Property) (*domain.PropertyMedia, error)
}
