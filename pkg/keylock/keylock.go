package keylock

import (
	"context"
	"sync"
)

// KeyLock serialises work per key inside one process.
// Entries are reference counted and dropped once the last holder unlocks.
type KeyLock[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

func New[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{locks: make(map[K]*entry)}
}

// LockContext blocks until the key is free or ctx is done.
// The returned unlock func is safe to call more than once.
func (l *KeyLock[K]) LockContext(ctx context.Context, key K) (unlock func(), err error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return func() {}, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *KeyLock[K]) release(key K, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}
