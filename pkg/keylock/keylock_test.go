package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLock[K comparable](t *testing.T, l *KeyLock[K], key K) func() {
	t.Helper()
	unlock, err := l.LockContext(context.Background(), key)
	require.NoError(t, err)
	return unlock
}

func held[K comparable](l *KeyLock[K]) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestKeyLock_SerialisesSameKey(t *testing.T) {
	l := New[int64]()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.LockContext(context.Background(), 7)
			if err != nil {
				return
			}
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, held(l))
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := New[int64]()

	unlockA := mustLock(t, l, 1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock, _ := l.LockContext(context.Background(), 2)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyLock_UnlockIsIdempotent(t *testing.T) {
	l := New[string]()

	unlock := mustLock(t, l, "a")
	unlock()
	unlock()

	assert.Equal(t, 0, held(l))
}

func TestKeyLock_LockContextTimeout(t *testing.T) {
	l := New[int64]()

	unlock := mustLock(t, l, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := l.LockContext(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, held(l))

	again, err := l.LockContext(context.Background(), 1)
	assert.NoError(t, err)
	again()
}
