package memorycatalog

import (
	"context"
	"fmt"
	"showcase-service/internal/core/domain"
)

// Витрина объектов. Порядок менять нельзя: индекс записи - часть URL /building/{index}.
var defaultProperties = []domain.Property{
	{
		Title:       "Luxury Sky Tower",
		Description: "50-story luxury residential tower with panoramic views and world-class amenities. Experience the pinnacle of urban living with unparalleled luxury and comfort.",
		Price:       "$8.5M",
		Image:       "https://images.unsplash.com/photo-1582407947304-fd86f028f716",
		Features: []string{
			"24/7 Concierge",
			"Infinity Pool",
			"Private Helipad",
			"Smart Home Integration",
			"Private Theater",
			"Wine Cellar",
		},
		Category: domain.CategoryResidential,
	},
	{
		Title:       "The Glass House",
		Description: "Modern architectural marvel with sustainable design and cutting-edge technology. A perfect blend of luxury and environmental consciousness.",
		Price:       "$12.2M",
		Image:       "https://images.unsplash.com/photo-1577495508048-b635879837f1",
		Features: []string{
			"Smart Home System",
			"Green Certification",
			"Private Garden",
			"Solar Panels",
			"EV Charging",
			"Rainwater Harvesting",
		},
		Category: domain.CategoryResidential,
	},
	{
		Title:       "Ocean View Plaza",
		Description: "Premium commercial space in prime location with state-of-the-art facilities and spectacular ocean views. The perfect setting for your business.",
		Price:       "$15.8M",
		Image:       "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab",
		Features: []string{
			"Grade A Offices",
			"Retail Space",
			"Underground Parking",
			"Conference Center",
			"24/7 Security",
			"High-speed Elevators",
		},
		Category: domain.CategoryCommercial,
	},
}

// CatalogAdapter - неизменяемый каталог в памяти процесса
type CatalogAdapter struct {
	properties []domain.Property
}

// NewCatalogAdapter создает каталог со встроенными записями
func NewCatalogAdapter() *CatalogAdapter {
	return NewCatalogAdapterWith(defaultProperties)
}

// NewCatalogAdapterWith нужен тестам и демо-стендам с другим набором объектов
func NewCatalogAdapterWith(properties []domain.Property) *CatalogAdapter {
	return &CatalogAdapter{properties: cloneProperties(properties)}
}

func (a *CatalogAdapter) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return cloneProperties(a.properties), nil
}

func (a *CatalogAdapter) PropertyAt(ctx context.Context, index int) (*domain.Property, error) {
	if index < 0 || index >= len(a.properties) {
		return nil, fmt.Errorf("%w: index %d, catalog size %d", domain.ErrPropertyNotFound, index, len(a.properties))
	}
	p := cloneProperty(a.properties[index])
	return &p, nil
}

// Копии защищают каталог от изменений со стороны вызывающего кода
func cloneProperties(in []domain.Property) []domain.Property {
	out := make([]domain.Property, len(in))
	for i, p := range in {
		out[i] = cloneProperty(p)
	}
	return out
}

func cloneProperty(p domain.Property) domain.Property {
	p.Features = append([]string(nil), p.Features...)
	return p
}
