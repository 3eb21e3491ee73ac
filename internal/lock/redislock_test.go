package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/craftel-io/backend-craftel/internal/lock"
)

// Two holders of the same key must run strictly one after the other.
func TestWithLockSerializes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := lock.Locker{R: client, RetryBackoff: 5 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var mu sync.Mutex
	var order []string
	record := func(who string) {
		mu.Lock()
		order = append(order, who)
		mu.Unlock()
	}

	firstRunning := make(chan struct{})
	releaseFirst := make(chan struct{})
	go func() {
		err := locker.WithLock(ctx, "payout-run", 100*time.Millisecond, func(context.Context) error {
			record("first")
			close(firstRunning)
			<-releaseFirst
			return nil
		})
		require.NoError(t, err)
	}()
	<-firstRunning

	go func() {
		err := locker.WithLock(ctx, "payout-run", 100*time.Millisecond, func(context.Context) error {
			record("second")
			return nil
		})
		require.NoError(t, err)
	}()

	close(releaseFirst)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first", "second"}, order)
}
