package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	ok := func() error { return nil }
	errService := errors.New("service error")
	fail := func() error { return errService }

	cfg := Config{
		RecordLength:     10,
		Timeout:          2 * time.Second,
		Percentile:       0.3,
		RecoveryRequests: 3,
	}

	t.Run("stays closed on success", func(t *testing.T) {
		t.Parallel()
		cb := newWithClock(cfg, (&fakeClock{t: time.Unix(0, 0)}).now)
		for i := 0; i < 50; i++ {
			require.NoError(t, cb.Call(ok))
		}
		require.Equal(t, Closed, cb.State())
	})

	t.Run("opens after failures and rejects calls", func(t *testing.T) {
		t.Parallel()
		cb := newWithClock(cfg, (&fakeClock{t: time.Unix(0, 0)}).now)
		for i := 0; i < 3; i++ {
			require.ErrorIs(t, cb.Call(fail), errService)
		}
		require.Equal(t, Open, cb.State())

		called := false
		err := cb.Call(func() error { called = true; return nil })
		require.ErrorIs(t, err, ErrOpenCB)
		require.False(t, called)
	})

	t.Run("half-open recovers to closed", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{t: time.Unix(0, 0)}
		cb := newWithClock(cfg, clock.now)
		for i := 0; i < 3; i++ {
			_ = cb.Call(fail)
		}
		require.Equal(t, Open, cb.State())

		clock.advance(3 * time.Second)
		for i := 0; i < cfg.RecoveryRequests; i++ {
			require.NoError(t, cb.Call(ok))
		}
		require.Equal(t, Closed, cb.State())
	})

	t.Run("half-open failure reopens", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{t: time.Unix(0, 0)}
		cb := newWithClock(cfg, clock.now)
		for i := 0; i < 3; i++ {
			_ = cb.Call(fail)
		}
		clock.advance(3 * time.Second)
		require.ErrorIs(t, cb.Call(fail), errService)
		require.Equal(t, Open, cb.State())
		require.ErrorIs(t, cb.Call(ok), ErrOpenCB)
	})
}
