package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := DefaultRetryPolicy()

	assert.Equal(t, 1*time.Second, p.Backoff(1))
	assert.Equal(t, 2*time.Second, p.Backoff(2))
	assert.Equal(t, 4*time.Second, p.Backoff(3))
	assert.Equal(t, 8*time.Second, p.Backoff(4))
	assert.Equal(t, 8*time.Second, p.Backoff(10))
}

func TestRetryPolicy_Do(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("succeeds on the third attempt", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		p := DefaultRetryPolicy()
		p.Sleep = sleeper.sleep

		calls := 0
		err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return errBoom
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.waits)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		sleeper := &recordingSleeper{}
		p := DefaultRetryPolicy()
		p.Sleep = sleeper.sleep

		calls := 0
		err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
			calls++
			return errBoom
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 3, calls)
		assert.Len(t, sleeper.waits, 2)
	})

	t.Run("stops on non-retryable errors", func(t *testing.T) {
		errFatal := errors.New("fatal")
		p := DefaultRetryPolicy()
		p.Sleep = (&recordingSleeper{}).sleep
		p.Retryable = func(err error) bool { return !errors.Is(err, errFatal) }

		calls := 0
		err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
			calls++
			return errFatal
		})

		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := DefaultRetryPolicy()

		calls := 0
		err := p.Do(ctx, func(ctx context.Context, attempt int) error {
			calls++
			cancel()
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero value makes one attempt", func(t *testing.T) {
		calls := 0
		err := RetryPolicy{}.Do(context.Background(), func(ctx context.Context, attempt int) error {
			calls++
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})
}
