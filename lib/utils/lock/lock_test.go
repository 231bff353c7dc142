package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`free key check`, func(t *testing.T) {
		called := false
		ok, err := WithDelay(context.Background(), "test:free", time.Second, func() error {
			called = true
			held, err := WithDelay(context.Background(), "test:free", 60*time.Millisecond, func() error {
				return nil
			})
			require.NoError(t, err)
			require.False(t, held)
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, called)
		ok, err = WithDelay(context.Background(), "test:free", 60*time.Millisecond, func() error {
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
	})
	t.Run(`busy key wait timeout check`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "test:busy", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "test:busy", 100*time.Millisecond, func() error {
			t.Fatal("код не должен выполняться")
			return nil
		})
		close(release)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestResourceLock(t *testing.T) {
	t.Run(`context cancel while waiting check`, func(t *testing.T) {
		l := newResourceLock()
		require.True(t, l.Acquire(context.Background(), "first"))
		require.Equal(t, "first", l.Holder())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.False(t, l.Acquire(ctx, "second"))

		l.Release("first")
		require.True(t, l.Acquire(context.Background(), "second"))
		l.Release("second")
		require.Equal(t, "", l.Holder())
	})
	t.Run(`stopped lock check`, func(t *testing.T) {
		l := newResourceLock()
		l.Stop()
		l.Stop()
		require.False(t, l.Acquire(context.Background(), "any"))
	})
}
