package usecase

import (
	"context"
	"fmt"
	"showcase-service/internal/contextkeys"
	"showcase-service/internal/core/port"
)

type ControlHeroPlaybackUseCase struct {
	playback port.HeroPlaybackPort
}

func NewControlHeroPlaybackUseCase(playback port.HeroPlaybackPort) *ControlHeroPlaybackUseCase {
	return &ControlHeroPlaybackUseCase{playback: playback}
}

// Execute ставит hero-слайдшоу посетителя на паузу (playing=false) или запускает его
func (uc *ControlHeroPlaybackUseCase) Execute(ctx context.Context, sessionID string, playing bool) error {
	if sessionID == "" {
		return fmt.Errorf("hero playback requires a visitor session")
	}

	affected := uc.playback.SetPlaying(sessionID, playing)

	contextkeys.LoggerFromContext(ctx).Debug("Hero playback changed", port.Fields{
		"use_case":         "ControlHeroPlayback",
		"session_id":       sessionID,
		"playing":          playing,
		"affected_streams": affected,
	})
	return nil
}

// Select показывает картинку по индексу (точка под баннером) и ставит слайдшоу на паузу
func (uc *ControlHeroPlaybackUseCase) Select(ctx context.Context, sessionID string, index int) error {
	if sessionID == "" {
		return fmt.Errorf("hero playback requires a visitor session")
	}

	affected, err := uc.playback.Select(sessionID, index)
	if err != nil {
		return fmt.Errorf("failed to select hero image: %w", err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Hero image selected", port.Fields{
		"use_case":         "ControlHeroPlayback",
		"session_id":       sessionID,
		"index":            index,
		"affected_streams": affected,
	})
	return nil
}
