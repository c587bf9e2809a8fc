package logger

import "sync"

// An ID identifies an Appender registered in a Registry.
type ID uint64

// NoID is the ID of an Appender that is not registered.
const NoID ID = 0

// A Registered pairs an Appender with the ID it was registered under.
type Registered struct {
	ID       ID
	Appender Appender
}

// A Registry holds non-owning references to Appenders, keyed by ID,
// in the order they were added.
//
// IDs come from a counter starting at 1 and are never handed out twice,
// so an ID held after removal can never address a different Appender.
type Registry struct {
	mu      sync.RWMutex
	last    ID
	entries []Registered
}

// NewRegistry constructs an empty *Registry.
func NewRegistry() *Registry { return new(Registry) }

// Add registers a and returns its fresh ID.
// Adding a nil Appender registers nothing and returns NoID.
func (r *Registry) Add(a Appender) ID {
	if a == nil {
		return NoID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.last++
	r.entries = append(r.entries, Registered{ID: r.last, Appender: a})
	return r.last
}

// Remove unregisters the Appender paired to id.
// Removing an unknown or already removed ID does nothing.
// Remove reports whether an Appender was removed.
func (r *Registry) Remove(id ID) bool {
	if id == NoID {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}

	return false
}

// Get retrieves the Appender paired to id.
func (r *Registry) Get(id ID) (Appender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			return e.Appender, true
		}
	}

	return nil, false
}

// Len returns the number of registered Appenders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot copies the registered Appenders in registration order.
//
// Changes made to the Registry after Snapshot returns,
// including those made by an Appender while it is being dispatched to,
// are not reflected in the copy.
func (r *Registry) Snapshot() []Registered {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}

	out := make([]Registered, len(r.entries))
	copy(out, r.entries)
	return out
}
