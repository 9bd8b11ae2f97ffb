package port

import (
	"context"
	"showcase-service/internal/core/domain"
)

// InquirySinkPort - куда уходят заявки посетителей.
// Реальной доставки нет: текущая реализация только пишет их в лог.
type InquirySinkPort interface {
	SaveContactMessage(ctx context.Context, id string, msg domain.ContactMessage) error
	SaveTourRequest(ctx context.Context, wizard domain.TourWizard) error
}
