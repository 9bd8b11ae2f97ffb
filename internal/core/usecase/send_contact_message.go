package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type SendContactMessageUseCase struct {
	validator port.FormValidatorPort
	sink      port.InquirySinkPort
	now       func() time.Time
}

func NewSendContactMessageUseCase(validator port.FormValidatorPort, sink port.InquirySinkPort) *SendContactMessageUseCase {
	return &SendContactMessageUseCase{
		validator: validator,
		sink:      sink,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *SendContactMessageUseCase) Execute(ctx context.Context, msg domain.ContactMessage) (*domain.ContactReceipt, error) {
	messageID := uuid.New().String()
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SendContactMessage",
		"message_id": messageID,
	})

	ucLogger.Debug("Use case started", nil)

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact message: %w", err)
	}
	if err := uc.validator.ValidateContactMessage(body); err != nil {
		ucLogger.Info("Contact message rejected", port.Fields{"reason": err.Error()})
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidContactMessage, err)
	}

	if err := uc.sink.SaveContactMessage(ctx, messageID, msg); err != nil {
		ucLogger.Error("Failed to hand over contact message", err, nil)
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)

	return &domain.ContactReceipt{
		ID:           messageID,
		ReceivedAt:   uc.now(),
		Confirmation: domain.ContactConfirmation,
	}, nil
}
