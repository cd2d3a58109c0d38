// Package registry shares lazily constructed instances across a process.
//
// An instance is bound to a fixed key on first use and every later lookup
// returns that same instance. Construction of a key succeeds at most once,
// even when first use races between goroutines. A factory that panics leaves
// the key unbound, so the next caller constructs it again.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/insightapi/suggestions-client-go/internal/util"
)

type Registry struct {
	instances util.SyncMap[string, *entry]
}

type entry struct {
	mu    sync.Mutex
	done  atomic.Bool
	value any
}

func (e *entry) get(factory func() (any, error)) (any, error) {
	if e.done.Load() {
		return e.value, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done.Load() {
		return e.value, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	e.value = v
	e.done.Store(true)
	return v, nil
}

func New() *Registry {
	return &Registry{instances: util.NewSyncMap[string, *entry]()}
}

// Default is the process-wide registry.
var Default = New()

// Instantiate returns the instance bound to key, calling factory to create it
// if the key is unbound. A factory may instantiate other keys but not its own.
// It panics if key is bound to a value of another type.
func Instantiate[T any](r *Registry, key string, factory func() T) T {
	v, _ := TryInstantiate(r, key, func() (T, error) { return factory(), nil })
	return v
}

// TryInstantiate is Instantiate for factories that can fail. An error is
// returned to the caller and leaves the key unbound.
func TryInstantiate[T any](r *Registry, key string, factory func() (T, error)) (T, error) {
	e, _ := r.instances.GetOrSet(key, func() *entry { return &entry{} })
	v, err := e.get(func() (any, error) { return factory() })
	if err != nil {
		var zero T
		return zero, err
	}
	return mustCast[T](key, v), nil
}

// Lookup returns the instance bound to key without constructing one.
func Lookup[T any](r *Registry, key string) (T, bool) {
	e, ok := r.instances.GetCheck(key)
	if !ok || !e.done.Load() {
		var zero T
		return zero, false
	}
	t, ok := e.value.(T)
	return t, ok
}

// Shared is Instantiate on the Default registry.
func Shared[T any](key string, factory func() T) T {
	return Instantiate(Default, key, factory)
}

// TryShared is TryInstantiate on the Default registry.
func TryShared[T any](key string, factory func() (T, error)) (T, error) {
	return TryInstantiate(Default, key, factory)
}

// Forget unbinds key. Holders of the old instance keep it; the next
// Instantiate constructs a new one.
func (r *Registry) Forget(key string) bool {
	return r.instances.Delete(key)
}

func (r *Registry) Keys() []string {
	keys := r.instances.Keys()
	sort.Strings(keys)
	return keys
}

func mustCast[T any](key string, v any) T {
	t, ok := v.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("registry key %q holds %T, not %T", key, v, want))
	}
	return t
}
