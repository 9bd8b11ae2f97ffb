package inquirylog

import (
	"context"
	"encoding/json"
	"fmt"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

// InquiryLogAdapter "сохраняет" заявки, записывая их в лог.
// Никакой доставки (почта, CRM, база) за ним нет.
type InquiryLogAdapter struct {
	logger port.LoggerPort
}

func NewInquiryLogAdapter(baseLogger port.LoggerPort) *InquiryLogAdapter {
	return &InquiryLogAdapter{
		logger: baseLogger.WithFields(port.Fields{"component": "InquiryLogAdapter"}),
	}
}

// requestLogger берет логгер запроса (с trace_id), если он есть
func (a *InquiryLogAdapter) requestLogger(ctx context.Context) port.LoggerPort {
	if contextkeys.TraceIDFromContext(ctx) == "" {
		return a.logger
	}
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "InquiryLogAdapter"})
}

func (a *InquiryLogAdapter) SaveContactMessage(ctx context.Context, id string, msg domain.ContactMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode contact message: %w", err)
	}

	a.requestLogger(ctx).Info("Simulating saving contact message", port.Fields{
		"message_id": id,
		"payload":    string(payload),
	})
	return nil
}

func (a *InquiryLogAdapter) SaveTourRequest(ctx context.Context, wizard domain.TourWizard) error {
	payload, err := json.Marshal(wizard.Request)
	if err != nil {
		return fmt.Errorf("failed to encode tour request: %w", err)
	}

	a.requestLogger(ctx).Info("Simulating saving tour request", port.Fields{
		"building_index": wizard.BuildingIndex,
		"building_title": wizard.BuildingTitle,
		"payload":        string(payload),
	})
	return nil
}
