package usecases_port

import (
	"context"
	"showcase-service/internal/core/domain"
)

type SendContactMessageUseCase interface {
	Execute(ctx context.Context, msg domain.ContactMessage) (*domain.ContactReceipt, error)
}
