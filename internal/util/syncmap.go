package util

import "sync"

func NewSyncMap[K comparable, V any]() SyncMap[K, V] {
	return SyncMap[K, V]{m: map[K]V{}}
}

type SyncMap[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}

func (m *SyncMap[K, V]) GetCheck(k K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

func (m *SyncMap[K, V]) Set(k K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[k] = v
}

// GetOrSet returns the value stored under k. If there is none, it stores the
// result of newValue and returns that. newValue runs under the write lock, so
// it is called at most once per key.
func (m *SyncMap[K, V]) GetOrSet(k K, newValue func() V) (V, bool) {
	m.mu.RLock()
	v, ok := m.m[k]
	m.mu.RUnlock()
	if ok {
		return v, true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.m[k]; ok {
		return v, true
	}
	v = newValue()
	m.m[k] = v
	return v, false
}

// Update applies fn to the value under k while holding the write lock.
// fn reports whether the key exists; returning false from fn leaves the map unchanged.
func (m *SyncMap[K, V]) Update(k K, fn func(v V, ok bool) (V, bool)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.m[k]
	v, keep := fn(old, ok)
	if !keep {
		return false
	}
	m.m[k] = v
	return true
}

func (m *SyncMap[K, V]) Delete(k K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.m[k]
	delete(m.m, k)
	return ok
}

func (m *SyncMap[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}
