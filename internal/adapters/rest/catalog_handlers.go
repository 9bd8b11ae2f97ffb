package rest

import (
	"errors"
	"net/http"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/port/usecases_port"
)

type CatalogHandler struct {
	findPropertiesUC     usecases_port.FindPropertiesUseCase
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase
	getSiteContentUC     usecases_port.GetSiteContentUseCase
}

func NewCatalogHandler(findPropertiesUC usecases_port.FindPropertiesUseCase,
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase,
	getSiteContentUC usecases_port.GetSiteContentUseCase) *CatalogHandler {
	return &CatalogHandler{
		findPropertiesUC:     findPropertiesUC,
		getPropertyDetailsUC: getPropertyDetailsUC,
		getSiteContentUC:     getSiteContentUC,
	}
}

// FindBuildings обрабатывает GET /api/v1/buildings?category=&q=
func (h *CatalogHandler) FindBuildings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	category, err := domain.ParseCategoryFilter(query.Get("category"))
	if err != nil {
		logger.Warn("Invalid category filter", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Unknown category, expected one of: all, residential, commercial")
		return
	}

	filters := domain.PropertyFilters{
		Category: category,
		Query:    query.Get("q"),
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "FindBuildings",
		"filters": filters,
	})
	handlerLogger.Debug("Processing request to find buildings", nil)

	result, err := h.findPropertiesUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve buildings")
		return
	}

	response := BuildingsResponse{
		Total:    len(result),
		Category: string(filters.Category),
		Query:    filters.Query,
		Data:     make([]BuildingCardResponse, len(result)),
	}
	for i, item := range result {
		response.Data[i] = toBuildingCard(item)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetBuildingDetails обрабатывает GET /api/v1/buildings/{index}
func (h *CatalogHandler) GetBuildingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetBuildingDetails"})

	index, err := BuildingIndexParam(r)
	if err != nil {
		// Нечисловой индекс - та же ситуация "объект не найден"
		logger.Warn("Invalid building index", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusNotFound, "Building not found")
		return
	}

	view, err := h.getPropertyDetailsUC.Execute(r.Context(), index)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Building not found")
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve building")
		return
	}

	RespondWithJSON(w, http.StatusOK, toBuildingDetails(view))
}

// GetFilterOptions обрабатывает GET /api/v1/filters/options
func (h *CatalogHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	response := FilterOptionsResponse{}
	for _, f := range domain.CategoryFilters() {
		response.Categories = append(response.Categories, FilterOptionResponse{
			Value: string(f),
			Label: f.Label(),
		})
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetContent обрабатывает GET /api/v1/content
func (h *CatalogHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.getSiteContentUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "GetContent"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve site content")
		return
	}
	RespondWithJSON(w, http.StatusOK, toSiteContentResponse(content))
}
