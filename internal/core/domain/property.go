package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category - грубая классификация объекта, по которой работает фильтр
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
)

// Property - запись каталога. Создается при старте процесса и никогда не меняется.
// Идентификатор у записи только позиционный (индекс в каталоге).
type Property struct {
	Title       string
	Description string
	Price       string // уже отформатированная для показа строка, например "$8.5M"
	Image       string
	Features    []string
	Category    Category
}

// IndexedProperty - запись вместе с ее позицией в полном каталоге
type IndexedProperty struct {
	Index    int
	Property Property
}

// CategoryFilter - значение переключателя категорий на странице
type CategoryFilter string

const CategoryAll CategoryFilter = "all"

// CategoryFilters возвращает варианты переключателя в порядке отображения
func CategoryFilters() []CategoryFilter {
	return []CategoryFilter{
		CategoryAll,
		CategoryFilter(CategoryResidential),
		CategoryFilter(CategoryCommercial),
	}
}

// ParseCategoryFilter разбирает значение из запроса. Пустая строка означает "all".
func ParseCategoryFilter(raw string) (CategoryFilter, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return CategoryAll, nil
	}
	for _, f := range CategoryFilters() {
		if string(f) == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// Label - подпись для кнопки фильтра ("All", "Residential", ...)
func (f CategoryFilter) Label() string {
	return cases.Title(language.English).String(string(f))
}

// Label - подпись категории для карточки объекта
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

// PropertyFilters - два независимых предиката поиска
type PropertyFilters struct {
	Category CategoryFilter `json:"category"`
	Query    string         `json:"query"`
}

// Matches проверяет, проходит ли запись оба предиката.
// Поиск подстроки регистронезависимый и идет по заголовку и описанию.
func (f PropertyFilters) Matches(p Property) bool {
	if f.Category != "" && f.Category != CategoryAll && string(f.Category) != string(p.Category) {
		return false
	}
	if f.Query == "" {
		return true
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(f.Query)
	return strings.Contains(lower.String(p.Title), needle) ||
		strings.Contains(lower.String(p.Description), needle)
}

// FilterProperties возвращает подпоследовательность каталога с сохранением порядка.
// Каждый результат несет свой индекс в полном каталоге.
func FilterProperties(catalog []Property, filters PropertyFilters) []IndexedProperty {
	result := make([]IndexedProperty, 0, len(catalog))
	for i, p := range catalog {
		if filters.Matches(p) {
			result = append(result, IndexedProperty{Index: i, Property: p})
		}
	}
	return result
}
