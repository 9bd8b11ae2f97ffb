package rest

import (
	"errors"
	"net/http"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/port/usecases_port"
)

type ContactHandler struct {
	sendContactMessageUC usecases_port.SendContactMessageUseCase
}

func NewContactHandler(sendContactMessageUC usecases_port.SendContactMessageUseCase) *ContactHandler {
	return &ContactHandler{sendContactMessageUC: sendContactMessageUC}
}

// SendMessage обрабатывает POST /api/v1/contact/messages
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendMessage"})

	var msg domain.ContactMessage
	if err := decodeJSONBody(w, r, &msg); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.sendContactMessageUC.Execute(r.Context(), msg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContactMessage) {
			WriteJSONError(w, http.StatusBadRequest, domain.ContactErrorMessage(err))
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	RespondWithJSON(w, http.StatusAccepted, ContactMessageAcceptedResponse{
		ID:         receipt.ID,
		Status:     receipt.Confirmation,
		ReceivedAt: receipt.ReceivedAt,
	})
}
