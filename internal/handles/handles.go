// Package handles tracks completion callbacks that are pending at the host
// boundary.
//
// Go pointers cannot be stored in host memory, so the opaque user_data
// field handed to the host is a uintptr handle issued here. The host thunk
// recovers the callback by taking its handle back out of the registry;
// Take removes the entry as it resolves, so a handle can dispatch at most
// once no matter how the host behaves.
package handles

import (
	"sync"
)

// Pending is a callback parked in the registry awaiting its completion
// result from the host.
type Pending interface {
	Run(result int32)
}

var (
	mu      sync.Mutex
	pending = make(map[uintptr]Pending)
	nextID  uintptr = 1
)

// Register parks a callback and returns the handle to embed in the host
// record as its opaque user_data.
func Register(p Pending) uintptr {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	pending[id] = p
	return id
}

// Take removes and returns the callback for id, or nil if the handle was
// never issued, already dispatched, or retired by a manual Run.
func Take(id uintptr) Pending {
	mu.Lock()
	defer mu.Unlock()
	p := pending[id]
	delete(pending, id)
	return p
}

// Unregister retires a handle without dispatching it. Used when the owner
// runs the callback manually before the host ever fires it. Safe to call
// for a handle that is already gone.
func Unregister(id uintptr) {
	mu.Lock()
	defer mu.Unlock()
	delete(pending, id)
}

// Count returns the number of callbacks currently parked.
// Useful for leak checks in tests.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(pending)
}
