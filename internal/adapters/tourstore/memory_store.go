package tourstore

import (
	"context"
	"fmt"
	"showcase-service/internal/core/domain"
	"showcase-service/internal/core/port"
	"sync"
	"time"
)

type entry struct {
	wizard     domain.TourWizard
	lastAccess time.Time
}

// MemoryStore хранит мастера записи на просмотр в памяти процесса.
// Записи, к которым не обращались дольше ttl, удаляются фоновой уборкой.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[port.TourSessionKey]*entry

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	logger port.LoggerPort
	closed chan struct{}
	once   sync.Once
}

type Option func(*MemoryStore)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(ttl, sweepInterval time.Duration, baseLogger port.LoggerPort, opts ...Option) (*MemoryStore, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("tour session ttl must be positive, got %s", ttl)
	}
	if sweepInterval <= 0 {
		return nil, fmt.Errorf("tour session sweep interval must be positive, got %s", sweepInterval)
	}

	s := &MemoryStore{
		entries:       make(map[port.TourSessionKey]*entry),
		ttl:           ttl,
		sweepInterval: sweepInterval,
		now:           time.Now,
		logger:        baseLogger.WithFields(port.Fields{"component": "TourSessionStore"}),
		closed:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *MemoryStore) Get(ctx context.Context, key port.TourSessionKey) (*domain.TourWizard, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return nil, false, nil
	}
	now := s.now()
	if now.Sub(e.lastAccess) > s.ttl {
		delete(s.entries, key)
		return nil, false, nil
	}
	e.lastAccess = now

	w := e.wizard
	return &w, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, key port.TourSessionKey, wizard *domain.TourWizard) error {
	if wizard == nil {
		return fmt.Errorf("cannot save nil tour wizard")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry{wizard: *wizard, lastAccess: s.now()}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key port.TourSessionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len - число живых и еще не убранных мастеров
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep удаляет просроченные мастера и возвращает их количество
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.lastAccess) > s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Start запускает периодическую уборку и блокируется до отмены контекста или Close
func (s *MemoryStore) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	s.logger.Info("Tour session sweeper started", port.Fields{
		"ttl":            s.ttl.String(),
		"sweep_interval": s.sweepInterval.String(),
	})

	for {
		select {
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("Expired tour sessions removed", port.Fields{"removed": removed})
			}
		case <-ctx.Done():
			return nil
		case <-s.closed:
			return nil
		}
	}
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}
