package port

// HeroPlaybackPort управляет слайдшоу hero-баннера для одного посетителя
type HeroPlaybackPort interface {
	// SetPlaying ставит слайдшоу на паузу или снимает с нее.
	// Возвращает число открытых потоков, к которым применилось изменение.
	SetPlaying(sessionID string, playing bool) int
	// Select показывает картинку по индексу и ставит слайдшоу на паузу.
	// Индекс вне диапазона - ошибка domain.ErrIndexOutOfRange.
	Select(sessionID string, index int) (int, error)
	IsPlaying(sessionID string) bool
	// SelectedImage - картинка, на которой посетитель остановил слайдшоу (0, если не останавливал)
	SelectedImage(sessionID string) int
}
