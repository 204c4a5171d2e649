// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// Handle identifies a unit stored in a Registry.
type Handle uint32

// InvalidHandle is never assigned to a registered unit.
const InvalidHandle Handle = 0

// UnregisterObserver is notified before a unit leaves the registry.
type UnregisterObserver interface {
	// OnUnregister releases everything that depends on u. Returning an
	// error keeps u registered.
	OnUnregister(u *Unit) error
}

// Registry stores units in an arena and resolves host pointers to them.
//
// Registry is not safe for concurrent use; it is owned by the goroutine
// that drives the pipeline cache.
type Registry struct {
	// units is indexed by handle-1.
	units  []*Unit
	free   []Handle
	byHost map[HostPtr]Handle

	observer UnregisterObserver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHost: make(map[HostPtr]Handle),
	}
}

// SetObserver installs the observer notified by Unregister.
func (r *Registry) SetObserver(o UnregisterObserver) {
	r.observer = o
}

// TryGet returns the unit registered for host.
func (r *Registry) TryGet(host HostPtr) (*Unit, bool) {
	h, ok := r.byHost[host]
	if !ok {
		return nil, false
	}
	return r.units[h-1], true
}

// Lookup returns the unit stored under h.
func (r *Registry) Lookup(h Handle) (*Unit, bool) {
	if h == InvalidHandle || int(h) > len(r.units) {
		return nil, false
	}
	u := r.units[h-1]
	return u, u != nil
}

// Register stores u and returns its handle.
func (r *Registry) Register(u *Unit) (Handle, error) {
	if _, ok := r.byHost[u.host]; ok {
		return InvalidHandle, fmt.Errorf("%w: 0x%X", ErrAlreadyRegistered, uint64(u.host))
	}

	var h Handle
	if n := len(r.free); n > 0 {
		h = r.free[n-1]
		r.free = r.free[:n-1]
		r.units[h-1] = u
	} else {
		r.units = append(r.units, u)
		//nolint:gosec // G115: unit count stays far below 2^32
		h = Handle(len(r.units))
	}
	u.handle = h
	r.byHost[u.host] = h
	return h, nil
}

// Unregister notifies the observer and then removes u.
func (r *Registry) Unregister(u *Unit) error {
	h, ok := r.byHost[u.host]
	if !ok || r.units[h-1] != u {
		return fmt.Errorf("%w: %s program at 0x%X", ErrNotRegistered, u.stage, uint64(u.gpuAddr))
	}
	if r.observer != nil {
		if err := r.observer.OnUnregister(u); err != nil {
			return err
		}
	}
	delete(r.byHost, u.host)
	r.units[h-1] = nil
	r.free = append(r.free, h)
	u.handle = InvalidHandle
	return nil
}

// InvalidateRegion unregisters every unit whose code overlaps the CPU range
// [addr, addr+size). It returns the number of units removed.
func (r *Registry) InvalidateRegion(addr CPUAddr, size uint64) (int, error) {
	var hit []*Unit
	for _, u := range r.units {
		if u != nil && u.Overlaps(addr, size) {
			hit = append(hit, u)
		}
	}
	for i, u := range hit {
		if err := r.Unregister(u); err != nil {
			return i, err
		}
	}
	return len(hit), nil
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	return len(r.byHost)
}
