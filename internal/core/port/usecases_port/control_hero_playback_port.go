package usecases_port

import "context"

type ControlHeroPlaybackUseCase interface {
	Execute(ctx context.Context, sessionID string, playing bool) error
	// Select показывает картинку index и ставит слайдшоу на паузу
	Select(ctx context.Context, sessionID string, index int) error
}
