package rotator

import (
	"context"
	"fmt"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"sync"
	"time"
)

const (
	DefaultSessionTTL    = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// pausedSession - посетитель, остановивший слайдшоу. Играющие посетители не хранятся.
type pausedSession struct {
	current    int
	lastAccess time.Time
}

// Registry хранит открытые hero-потоки по посетителям.
// Реализует port.HeroPlaybackPort: пауза применяется ко всем вкладкам посетителя
// и запоминается для потоков, которые он откроет позже.
// Пауза посетителя без открытых потоков забывается через ttl (см. Sweep).
type Registry struct {
	mu      sync.Mutex
	streams map[string][]*HeroRotator
	paused  map[string]*pausedSession

	images        int
	interval      time.Duration
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	logger port.LoggerPort
	closed chan struct{}
	once   sync.Once
}

type Option func(*Registry)

// WithSessionTTL задает, сколько помнить паузу посетителя без открытых потоков
// и как часто ее проверять. Неположительные значения игнорируются.
func WithSessionTTL(ttl, sweepInterval time.Duration) Option {
	return func(reg *Registry) {
		if ttl > 0 {
			reg.ttl = ttl
		}
		if sweepInterval > 0 {
			reg.sweepInterval = sweepInterval
		}
	}
}

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(reg *Registry) { reg.now = now }
}

func NewRegistry(images int, interval time.Duration, baseLogger port.LoggerPort, opts ...Option) *Registry {
	reg := &Registry{
		streams:       make(map[string][]*HeroRotator),
		paused:        make(map[string]*pausedSession),
		images:        images,
		interval:      interval,
		ttl:           DefaultSessionTTL,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		logger:        baseLogger.WithFields(port.Fields{"component": "HeroRotatorRegistry"}),
		closed:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// pausedLocked возвращает паузу посетителя и продлевает ее. Вызывать под reg.mu.
func (reg *Registry) pausedLocked(sessionID string) (*pausedSession, bool) {
	p, found := reg.paused[sessionID]
	if !found {
		return nil, false
	}
	now := reg.now()
	if len(reg.streams[sessionID]) == 0 && now.Sub(p.lastAccess) > reg.ttl {
		delete(reg.paused, sessionID)
		return nil, false
	}
	p.lastAccess = now
	return p, true
}

// Attach создает ротатор для нового потока. Запускать его (Run) должен вызывающий.
func (reg *Registry) Attach(sessionID string) *HeroRotator {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	p, paused := reg.pausedLocked(sessionID)
	r := NewHeroRotator(reg.images, reg.interval, !paused)
	if paused {
		// Поток еще не запущен, поэтому выставляем позицию напрямую
		_ = r.carousel.Select(p.current)
	}
	reg.streams[sessionID] = append(reg.streams[sessionID], r)

	reg.logger.Debug("Hero stream attached", port.Fields{
		"session_id":    sessionID,
		"total_streams": len(reg.streams[sessionID]),
	})
	return r
}

// Detach убирает ротатор закрытого потока
func (reg *Registry) Detach(sessionID string, r *HeroRotator) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	streams, found := reg.streams[sessionID]
	if !found {
		return
	}

	remaining := make([]*HeroRotator, 0, len(streams))
	for _, s := range streams {
		if s != r {
			remaining = append(remaining, s)
		}
	}

	if len(remaining) == 0 {
		delete(reg.streams, sessionID)
	} else {
		reg.streams[sessionID] = remaining
	}
	// Срок жизни паузы отсчитывается от закрытия последнего потока
	if p, found := reg.paused[sessionID]; found {
		p.lastAccess = reg.now()
	}
	reg.logger.Debug("Hero stream detached", port.Fields{
		"session_id":        sessionID,
		"remaining_streams": len(remaining),
	})
}

func (reg *Registry) SetPlaying(sessionID string, playing bool) int {
	reg.mu.Lock()
	streams := append([]*HeroRotator(nil), reg.streams[sessionID]...)
	if playing {
		delete(reg.paused, sessionID)
	} else {
		current := 0
		if p, found := reg.pausedLocked(sessionID); found {
			current = p.current
		}
		if len(streams) > 0 {
			current = streams[0].Current().Index
		}
		reg.paused[sessionID] = &pausedSession{current: current, lastAccess: reg.now()}
	}
	reg.mu.Unlock()

	for _, r := range streams {
		if playing {
			r.Resume()
		} else {
			r.Pause()
		}
	}
	return len(streams)
}

func (reg *Registry) Select(sessionID string, index int) (int, error) {
	if index < 0 || index >= reg.images {
		return 0, fmt.Errorf("%w: hero image %d not in [0, %d)", domain.ErrIndexOutOfRange, index, reg.images)
	}

	reg.mu.Lock()
	reg.paused[sessionID] = &pausedSession{current: index, lastAccess: reg.now()}
	streams := append([]*HeroRotator(nil), reg.streams[sessionID]...)
	reg.mu.Unlock()

	for _, r := range streams {
		if err := r.Select(index); err != nil {
			return 0, err
		}
	}
	return len(streams), nil
}

func (reg *Registry) IsPlaying(sessionID string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	_, paused := reg.pausedLocked(sessionID)
	return !paused
}

func (reg *Registry) SelectedImage(sessionID string) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if p, paused := reg.pausedLocked(sessionID); paused {
		return p.current
	}
	return 0
}

// PausedSessions - число запомненных пауз (для логов и тестов)
func (reg *Registry) PausedSessions() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.paused)
}

// ActiveStreams - число открытых потоков (для логов и тестов)
func (reg *Registry) ActiveStreams() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	total := 0
	for _, s := range reg.streams {
		total += len(s)
	}
	return total
}

func (reg *Registry) Images() int {
	return reg.images
}

// Sweep забывает паузы посетителей, у которых дольше ttl нет открытых потоков
func (reg *Registry) Sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	removed := 0
	for sessionID, p := range reg.paused {
		if len(reg.streams[sessionID]) == 0 && now.Sub(p.lastAccess) > reg.ttl {
			delete(reg.paused, sessionID)
			removed++
		}
	}
	return removed
}

// Start запускает периодическую уборку и блокируется до отмены контекста или Close
func (reg *Registry) Start(ctx context.Context) error {
	ticker := time.NewTicker(reg.sweepInterval)
	defer ticker.Stop()

	reg.logger.Info("Hero session sweeper started", port.Fields{
		"ttl":            reg.ttl.String(),
		"sweep_interval": reg.sweepInterval.String(),
	})

	for {
		select {
		case <-ticker.C:
			if removed := reg.Sweep(); removed > 0 {
				reg.logger.Debug("Stale hero pauses removed", port.Fields{"removed": removed})
			}
		case <-ctx.Done():
			return nil
		case <-reg.closed:
			return nil
		}
	}
}

func (reg *Registry) Close() error {
	reg.once.Do(func() { close(reg.closed) })
	return nil
}
