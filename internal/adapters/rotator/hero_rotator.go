package rotator

import (
	"context"
	"showcase-service/internal/core/domain"
	"sync"
	"time"
)

// Frame - то, что уходит в браузер: какая картинка показана и крутится ли слайдшоу
type Frame struct {
	Index   int  `json:"index"`
	Playing bool `json:"playing"`
}

// HeroRotator по таймеру переключает фон hero-баннера.
// Один ротатор обслуживает один открытый SSE-поток и живет, пока жив его контекст.
type HeroRotator struct {
	mu       sync.Mutex
	carousel domain.Carousel
	playing  bool

	interval time.Duration
	updates  chan Frame
	// control будит цикл Run после Pause/Resume/Select
	control chan struct{}
}

// DefaultInterval - период смены фона, если интервал не задан
const DefaultInterval = 5 * time.Second

func NewHeroRotator(images int, interval time.Duration, playing bool) *HeroRotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &HeroRotator{
		carousel: domain.NewCarousel(images),
		playing:  playing,
		interval: interval,
		updates:  make(chan Frame, 1),
		control:  make(chan struct{}, 1),
	}
}

// Updates - канал кадров. Закрывается, когда Run завершается.
func (r *HeroRotator) Updates() <-chan Frame {
	return r.updates
}

func (r *HeroRotator) Current() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Frame{Index: r.carousel.Current, Playing: r.playing}
}

func (r *HeroRotator) Pause() {
	r.setPlaying(false)
}

func (r *HeroRotator) Resume() {
	r.setPlaying(true)
}

func (r *HeroRotator) setPlaying(playing bool) {
	r.mu.Lock()
	changed := r.playing != playing
	r.playing = playing
	r.mu.Unlock()

	if changed {
		r.wake()
	}
}

// Select показывает картинку по индексу и останавливает слайдшоу
func (r *HeroRotator) Select(index int) error {
	r.mu.Lock()
	err := r.carousel.Select(index)
	if err == nil {
		r.playing = false
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.wake()
	return nil
}

func (r *HeroRotator) wake() {
	select {
	case r.control <- struct{}{}:
	default:
	}
}

// publish отправляет кадр без блокировки: непрочитанный старый кадр вытесняется новым
func (r *HeroRotator) publish(frame Frame) {
	for {
		select {
		case r.updates <- frame:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}

func (r *HeroRotator) advance() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.playing {
		r.carousel.Next()
	}
	return Frame{Index: r.carousel.Current, Playing: r.playing}
}

// Run крутит слайдшоу до отмены контекста. На паузе таймер остановлен.
func (r *HeroRotator) Run(ctx context.Context) {
	defer close(r.updates)

	var ticker *time.Ticker
	var tick <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stopTicker()

	syncTicker := func() {
		frame := r.Current()
		if frame.Playing && ticker == nil {
			ticker = time.NewTicker(r.interval)
			tick = ticker.C
		} else if !frame.Playing {
			stopTicker()
		}
	}

	syncTicker()
	for {
		select {
		case <-tick:
			r.publish(r.advance())
		case <-r.control:
			syncTicker()
			r.publish(r.Current())
		case <-ctx.Done():
			return
		}
	}
}
