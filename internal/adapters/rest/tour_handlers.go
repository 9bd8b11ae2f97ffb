package rest

import (
	"errors"
	"net/http"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/port/usecases_port"
)

type TourHandler struct {
	scheduleTourUC usecases_port.ScheduleTourUseCase
}

func NewTourHandler(scheduleTourUC usecases_port.ScheduleTourUseCase) *TourHandler {
	return &TourHandler{scheduleTourUC: scheduleTourUC}
}

// TourErrorStatus сопоставляет ошибки мастера с HTTP-статусами
func TourErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, "Building not found"
	case errors.Is(err, domain.ErrUnknownTourType):
		return http.StatusBadRequest, "Unknown tour type, expected one of: in-person, virtual"
	case errors.Is(err, domain.ErrInvalidTourForm):
		return http.StatusBadRequest, "Please fill in all fields: name, email, phone, date (YYYY-MM-DD) and time (HH:MM)"
	case errors.Is(err, domain.ErrInvalidTourTransition):
		return http.StatusConflict, "This action is not available at the current step"
	default:
		return http.StatusInternalServerError, "Failed to process tour request"
	}
}

// sessionKey собирает ключ мастера из cookie посетителя и индекса в URL
func (h *TourHandler) sessionKey(w http.ResponseWriter, r *http.Request) (port.TourSessionKey, bool) {
	index, err := BuildingIndexParam(r)
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Building not found")
		return port.TourSessionKey{}, false
	}
	return port.TourSessionKey{
		SessionID:     contextkeys.SessionIDFromContext(r.Context()),
		BuildingIndex: index,
	}, true
}

func (h *TourHandler) respond(w http.ResponseWriter, r *http.Request, wizard *domain.TourWizard, err error) {
	if err == nil {
		RespondWithJSON(w, http.StatusOK, toTourWizardResponse(wizard))
		return
	}

	status, message := TourErrorStatus(err)
	if status == http.StatusInternalServerError {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "Tour"})
	}
	if wizard == nil {
		WriteJSONError(w, status, message)
		return
	}
	// Вместе с ошибкой отдаем текущее состояние, чтобы клиент мог перерисовать шаг
	response := toTourWizardResponse(wizard)
	response.Error = message
	RespondWithJSON(w, status, response)
}

// GetTour обрабатывает GET /api/v1/buildings/{index}/tour
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r)
	if !ok {
		return
	}
	wizard, err := h.scheduleTourUC.Open(r.Context(), key)
	h.respond(w, r, wizard, err)
}

// ChooseType обрабатывает POST /api/v1/buildings/{index}/tour/type
func (h *TourHandler) ChooseType(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r)
	if !ok {
		return
	}

	var req ChooseTourTypeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wizard, err := h.scheduleTourUC.ChooseType(r.Context(), key, req.Type)
	h.respond(w, r, wizard, err)
}

// Back обрабатывает POST /api/v1/buildings/{index}/tour/back
func (h *TourHandler) Back(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r)
	if !ok {
		return
	}
	wizard, err := h.scheduleTourUC.Back(r.Context(), key)
	h.respond(w, r, wizard, err)
}

// Submit обрабатывает POST /api/v1/buildings/{index}/tour/submit
func (h *TourHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r)
	if !ok {
		return
	}

	var form domain.TourForm
	if err := decodeJSONBody(w, r, &form); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wizard, err := h.scheduleTourUC.Submit(r.Context(), key, form)
	h.respond(w, r, wizard, err)
}

// Close обрабатывает DELETE /api/v1/buildings/{index}/tour
func (h *TourHandler) Close(w http.ResponseWriter, r *http.Request) {
	key, ok := h.sessionKey(w, r)
	if !ok {
		return
	}
	if err := h.scheduleTourUC.Close(r.Context(), key); err != nil {
		h.respond(w, r, nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
