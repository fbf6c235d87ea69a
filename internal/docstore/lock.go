package docstore

import "sync"

// keyedMutex serializes operations per key. The repository keys it by
// "kind/owner" so every read-modify-write touching one user's tree —
// documents and order sidecars alike — runs single-writer. Mutexes are
// never evicted; the key space is bounded by the user population.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
