package world

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/la2effects/internal/effect"
)

// Host is an effect handler driven by the world update loop.
type Host interface {
	effect.Handler
	Tick(dt float64)
}

// Registry owns the hosts of the world, keyed by object ID.
// Effects refer to their owner only by object ID; Resolve turns the ID back
// into a host, so removing a host from the registry is enough to make its
// effects' owner handles dangle safely.
//
// Lookups are safe from any goroutine; Tick must run on the update loop.
type Registry struct {
	mu    sync.RWMutex
	hosts map[uint32]Host
	order []uint32 // insertion order, used for ticking
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		hosts: make(map[uint32]Host, 64),
		order: make([]uint32, 0, 64),
	}
}

// Add registers a host. Returns false if the object ID is already taken.
func (r *Registry) Add(h Host) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := h.ObjectID()
	if _, exists := r.hosts[id]; exists {
		return false
	}
	r.hosts[id] = h
	r.order = append(r.order, id)
	return true
}

// Remove unregisters a host by object ID.
func (r *Registry) Remove(objectID uint32) (Host, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hosts[objectID]
	if !ok {
		return nil, false
	}
	delete(r.hosts, objectID)
	if i := slices.Index(r.order, objectID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	slog.Debug("host removed from world", "objectID", objectID)
	return h, true
}

// Get returns the host with the given object ID.
func (r *Registry) Get(objectID uint32) (Host, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hosts[objectID]
	return h, ok
}

// Resolve implements the effect owner resolver.
func (r *Registry) Resolve(objectID uint32) (effect.Handler, bool) {
	h, ok := r.Get(objectID)
	if !ok {
		return nil, false
	}
	return h, true
}

// InstallResolver makes this registry the owner resolver of the effect package.
func (r *Registry) InstallResolver() {
	effect.SetOwnerResolver(r.Resolve)
}

// Len returns the number of registered hosts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hosts)
}

// Hosts returns the registered hosts in insertion order.
func (r *Registry) Hosts() []Host {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Host, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.hosts[id])
	}
	return result
}

// Tick advances every host by dt seconds in insertion order.
func (r *Registry) Tick(dt float64) {
	for _, h := range r.Hosts() {
		h.Tick(dt)
	}
}
