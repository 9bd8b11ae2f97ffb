package rotator

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	logger_adapter "showcase-service/internal/adapters/logger"
	"showcase-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// nextFrame ждет следующий кадр или падает по таймауту
func nextFrame(t *testing.T, r *HeroRotator, timeout time.Duration) (Frame, bool) {
	t.Helper()
	select {
	case frame, ok := <-r.Updates():
		return frame, ok
	case <-time.After(timeout):
		t.Fatalf("no hero frame within %s", timeout)
		return Frame{}, false
	}
}

func TestHeroRotator_AdvancesWhilePlaying(t *testing.T) {
	r := NewHeroRotator(3, 10*time.Millisecond, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	seen := make([]int, 0, 4)
	for len(seen) < 4 {
		frame, ok := nextFrame(t, r, time.Second)
		require.True(t, ok)
		assert.True(t, frame.Playing)
		seen = append(seen, frame.Index)
	}

	// Кадры могут вытесняться, но индекс всегда в пределах
	for _, idx := range seen {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 3)
	}
}

func TestHeroRotator_WrapsAround(t *testing.T) {
	r := NewHeroRotator(3, time.Hour, true)
	for i := 0; i < 3; i++ {
		r.advance()
	}
	assert.Equal(t, 0, r.Current().Index)
}

func TestHeroRotator_HoldsWhilePaused(t *testing.T) {
	r := NewHeroRotator(3, 10*time.Millisecond, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Pause()

	// Ждем кадр о паузе; тики, успевшие проскочить до нее, пропускаем
	var paused Frame
	require.Eventually(t, func() bool {
		select {
		case f := <-r.Updates():
			paused = f
			return !f.Playing
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	// На паузе индекс не меняется: повторный кадр о паузе допустим, продвижение нет
	hold := time.After(50 * time.Millisecond)
	for waiting := true; waiting; {
		select {
		case f := <-r.Updates():
			assert.Equal(t, Frame{Index: paused.Index, Playing: false}, f)
		case <-hold:
			waiting = false
		}
	}
	assert.Equal(t, paused.Index, r.Current().Index)

	r.Resume()
	frame, ok := nextFrame(t, r, time.Second)
	require.True(t, ok)
	assert.True(t, frame.Playing)
}

func TestHeroRotator_SelectPauses(t *testing.T) {
	r := NewHeroRotator(3, time.Hour, true)

	require.NoError(t, r.Select(2))
	assert.Equal(t, Frame{Index: 2, Playing: false}, r.Current())

	r.Resume()
	assert.ErrorIs(t, r.Select(3), domain.ErrIndexOutOfRange)
	assert.Equal(t, Frame{Index: 2, Playing: true}, r.Current(), "a rejected index changes nothing")
}

func TestHeroRotator_RunClosesUpdatesOnCancel(t *testing.T) {
	r := NewHeroRotator(3, time.Hour, true)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	_, ok := <-r.Updates()
	assert.False(t, ok)
}

func TestHeroRotator_DefaultInterval(t *testing.T) {
	r := NewHeroRotator(3, 0, true)
	assert.Equal(t, DefaultInterval, r.interval)
}

func newTestRegistry(opts ...Option) *Registry {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: &bytes.Buffer{}})
	return NewRegistry(3, time.Hour, logger, opts...)
}

// fakeClock - ручные часы для проверки сроков жизни пауз
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRegistry_PauseAppliesToSessionStreams(t *testing.T) {
	reg := newTestRegistry()

	a := reg.Attach("visitor-1")
	b := reg.Attach("visitor-1")
	other := reg.Attach("visitor-2")
	assert.Equal(t, 3, reg.ActiveStreams())

	assert.Equal(t, 2, reg.SetPlaying("visitor-1", false))
	assert.False(t, a.Current().Playing)
	assert.False(t, b.Current().Playing)
	assert.True(t, other.Current().Playing)
	assert.False(t, reg.IsPlaying("visitor-1"))

	// Новый поток наследует паузу
	c := reg.Attach("visitor-1")
	assert.False(t, c.Current().Playing)

	assert.Equal(t, 3, reg.SetPlaying("visitor-1", true))
	assert.True(t, c.Current().Playing)
	assert.True(t, reg.IsPlaying("visitor-1"))

	reg.Detach("visitor-1", a)
	reg.Detach("visitor-1", b)
	reg.Detach("visitor-1", c)
	reg.Detach("visitor-2", other)
	reg.Detach("visitor-3", other)
	assert.Equal(t, 0, reg.ActiveStreams())
	assert.Equal(t, 3, reg.Images())
}

func TestRegistry_PauseWithoutStreamsIsRemembered(t *testing.T) {
	reg := newTestRegistry()

	assert.Equal(t, 0, reg.SetPlaying("visitor-1", false))
	assert.False(t, reg.Attach("visitor-1").Current().Playing)
}

func TestRegistry_SelectPausesSessionStreams(t *testing.T) {
	reg := newTestRegistry()

	a := reg.Attach("visitor-1")
	b := reg.Attach("visitor-1")
	other := reg.Attach("visitor-2")

	affected, err := reg.Select("visitor-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.Equal(t, Frame{Index: 2, Playing: false}, a.Current())
	assert.Equal(t, Frame{Index: 2, Playing: false}, b.Current())
	assert.Equal(t, Frame{Index: 0, Playing: true}, other.Current())

	assert.False(t, reg.IsPlaying("visitor-1"))
	assert.Equal(t, 2, reg.SelectedImage("visitor-1"))

	// Новый поток открывается на выбранной картинке
	assert.Equal(t, Frame{Index: 2, Playing: false}, reg.Attach("visitor-1").Current())

	_, err = reg.Select("visitor-1", 3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = reg.Select("visitor-1", -1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Equal(t, 2, reg.SelectedImage("visitor-1"))

	reg.SetPlaying("visitor-1", true)
	assert.True(t, reg.IsPlaying("visitor-1"))
	assert.Equal(t, 0, reg.SelectedImage("visitor-1"))
	assert.Equal(t, 0, reg.PausedSessions())
}

func TestRegistry_PauseKeepsStreamPosition(t *testing.T) {
	reg := newTestRegistry()

	r := reg.Attach("visitor-1")
	r.advance()
	r.advance()

	reg.SetPlaying("visitor-1", false)
	assert.Equal(t, 2, reg.SelectedImage("visitor-1"))
}

func TestRegistry_SweepForgetsIdlePauses(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := newTestRegistry(WithSessionTTL(time.Minute, time.Second), WithClock(clock.Now))

	for i := 0; i < 10000; i++ {
		reg.SetPlaying(fmt.Sprintf("anonymous-%d", i), false)
	}
	streaming := reg.Attach("visitor-streaming")
	_, err := reg.Select("visitor-streaming", 1)
	require.NoError(t, err)
	require.Equal(t, 10001, reg.PausedSessions())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 0, reg.Sweep(), "pauses younger than ttl are kept")

	clock.Advance(time.Minute)
	assert.Equal(t, 10000, reg.Sweep())
	assert.Equal(t, 1, reg.PausedSessions(), "a session with an open stream keeps its pause")
	assert.False(t, reg.IsPlaying("visitor-streaming"))

	// После закрытия потока пауза живет еще ttl
	reg.Detach("visitor-streaming", streaming)
	clock.Advance(30 * time.Second)
	assert.Equal(t, 0, reg.Sweep())
	clock.Advance(time.Minute)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 0, reg.PausedSessions())
}

func TestRegistry_ExpiredPauseIsNotApplied(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := newTestRegistry(WithSessionTTL(time.Minute, time.Second), WithClock(clock.Now))

	reg.SetPlaying("visitor-1", false)
	clock.Advance(2 * time.Minute)

	// Уборка еще не прошла, но просроченная пауза уже не действует
	assert.True(t, reg.IsPlaying("visitor-1"))
	assert.Equal(t, 0, reg.PausedSessions())
	assert.True(t, reg.Attach("visitor-1").Current().Playing)
}

func TestRegistry_StartStopsOnClose(t *testing.T) {
	reg := newTestRegistry(WithSessionTTL(time.Millisecond, time.Millisecond))
	reg.SetPlaying("visitor-1", false)

	done := make(chan error, 1)
	go func() { done <- reg.Start(context.Background()) }()

	require.Eventually(t, func() bool { return reg.PausedSessions() == 0 }, time.Second, time.Millisecond)

	require.NoError(t, reg.Close())
	require.NoError(t, reg.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
