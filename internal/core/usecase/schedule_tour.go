package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
)

type ScheduleTourUseCase struct {
	catalog   port.CatalogPort
	sessions  port.TourSessionStoragePort
	validator port.FormValidatorPort
	sink      port.InquirySinkPort
}

func NewScheduleTourUseCase(catalog port.CatalogPort,
	sessions port.TourSessionStoragePort,
	validator port.FormValidatorPort,
	sink port.InquirySinkPort) *ScheduleTourUseCase {
	return &ScheduleTourUseCase{
		catalog:   catalog,
		sessions:  sessions,
		validator: validator,
		sink:      sink,
	}
}

func (uc *ScheduleTourUseCase) logger(ctx context.Context, action string, key port.TourSessionKey) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":       "ScheduleTour",
		"action":         action,
		"session_id":     key.SessionID,
		"building_index": key.BuildingIndex,
	})
}

// load достает мастер из хранилища или создает новый на шаге SelectType
func (uc *ScheduleTourUseCase) load(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, error) {
	if key.SessionID == "" {
		return nil, fmt.Errorf("tour wizard requires a visitor session")
	}

	wizard, found, err := uc.sessions.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load tour wizard: %w", err)
	}
	if found {
		return wizard, nil
	}

	property, err := uc.catalog.PropertyAt(ctx, key.BuildingIndex)
	if err != nil {
		return nil, err
	}
	return domain.NewTourWizard(key.BuildingIndex, property.Title), nil
}

func (uc *ScheduleTourUseCase) Open(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, error) {
	ucLogger := uc.logger(ctx, "open", key)

	wizard, err := uc.load(ctx, key)
	if err != nil {
		ucLogger.Warn("Failed to open tour wizard", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := uc.sessions.Save(ctx, key, wizard); err != nil {
		ucLogger.Error("Failed to save tour wizard", err, nil)
		return nil, err
	}

	ucLogger.Debug("Tour wizard opened", port.Fields{"step": wizard.Step.String()})
	return wizard, nil
}

func (uc *ScheduleTourUseCase) ChooseType(ctx context.Context, key port.TourSessionKey, tourType string) (*domain.TourWizard, error) {
	ucLogger := uc.logger(ctx, "choose_type", key)

	wizard, err := uc.load(ctx, key)
	if err != nil {
		ucLogger.Warn("Failed to load tour wizard", port.Fields{"error": err.Error()})
		return nil, err
	}

	parsed, err := domain.ParseTourType(tourType)
	if err != nil {
		ucLogger.Warn("Unknown tour type", port.Fields{"tour_type": tourType})
		return wizard, err
	}
	if err := wizard.ChooseType(parsed); err != nil {
		ucLogger.Warn("Rejected wizard transition", port.Fields{"step": wizard.Step.String()})
		return wizard, err
	}
	if err := uc.sessions.Save(ctx, key, wizard); err != nil {
		ucLogger.Error("Failed to save tour wizard", err, nil)
		return nil, err
	}

	ucLogger.Info("Tour type chosen", port.Fields{"tour_type": string(parsed)})
	return wizard, nil
}

func (uc *ScheduleTourUseCase) Back(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, error) {
	ucLogger := uc.logger(ctx, "back", key)

	wizard, err := uc.load(ctx, key)
	if err != nil {
		ucLogger.Warn("Failed to load tour wizard", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := wizard.Back(); err != nil {
		ucLogger.Warn("Rejected wizard transition", port.Fields{"step": wizard.Step.String()})
		return wizard, err
	}
	if err := uc.sessions.Save(ctx, key, wizard); err != nil {
		ucLogger.Error("Failed to save tour wizard", err, nil)
		return nil, err
	}

	ucLogger.Debug("Tour wizard moved back", nil)
	return wizard, nil
}

// Submit переводит мастер в Confirmed. При ошибке формы возвращается и мастер
// (оставшийся на шаге формы с введенными значениями), и ошибка ErrInvalidTourForm.
func (uc *ScheduleTourUseCase) Submit(ctx context.Context, key port.TourSessionKey, form domain.TourForm) (*domain.TourWizard, error) {
	ucLogger := uc.logger(ctx, "submit", key)

	wizard, err := uc.load(ctx, key)
	if err != nil {
		ucLogger.Warn("Failed to load tour wizard", port.Fields{"error": err.Error()})
		return nil, err
	}
	if wizard.Step != domain.StepFormEntry {
		ucLogger.Warn("Rejected wizard transition", port.Fields{"step": wizard.Step.String()})
		return wizard, fmt.Errorf("%w: submit from step %s", domain.ErrInvalidTourTransition, wizard.Step)
	}

	body, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tour form: %w", err)
	}

	if validationErr := uc.validator.ValidateTourForm(body); validationErr != nil {
		wizard.Request.TourForm = form
		if err := uc.sessions.Save(ctx, key, wizard); err != nil {
			ucLogger.Error("Failed to save tour wizard", err, nil)
			return nil, err
		}
		ucLogger.Info("Tour form rejected", port.Fields{"reason": validationErr.Error()})
		return wizard, fmt.Errorf("%w: %v", domain.ErrInvalidTourForm, validationErr)
	}

	if err := wizard.Submit(form); err != nil {
		if errors.Is(err, domain.ErrInvalidTourForm) {
			if saveErr := uc.sessions.Save(ctx, key, wizard); saveErr != nil {
				ucLogger.Error("Failed to save tour wizard", saveErr, nil)
				return nil, saveErr
			}
		}
		ucLogger.Info("Tour form rejected", port.Fields{"reason": err.Error()})
		return wizard, err
	}

	if err := uc.sink.SaveTourRequest(ctx, *wizard); err != nil {
		ucLogger.Error("Failed to hand over tour request", err, nil)
		return nil, fmt.Errorf("failed to save tour request: %w", err)
	}
	if err := uc.sessions.Save(ctx, key, wizard); err != nil {
		ucLogger.Error("Failed to save tour wizard", err, nil)
		return nil, err
	}

	ucLogger.Info("Tour scheduled", port.Fields{
		"tour_type": string(wizard.Request.Type),
		"date":      wizard.Request.Date,
		"time":      wizard.Request.Time,
	})
	return wizard, nil
}

// Close сбрасывает мастер: следующее открытие начнется с выбора типа
func (uc *ScheduleTourUseCase) Close(ctx context.Context, key port.TourSessionKey) error {
	ucLogger := uc.logger(ctx, "close", key)

	if err := uc.sessions.Delete(ctx, key); err != nil {
		ucLogger.Error("Failed to delete tour wizard", err, nil)
		return err
	}

	ucLogger.Debug("Tour wizard closed", nil)
	return nil
}
