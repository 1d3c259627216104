// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package varmgr implements a variable manager, which holds a set of named
// bindings in a variant object and notifies registered observers when the
// bindings change.
//
// A Manager listens to its own bindings object, so that additions, removals,
// and replacements made through Add and Remove are delivered to observers of
// the affected name:
//
//	m, err := varmgr.New()
//	if err != nil {
//	   log.Fatalf("New: %v", err)
//	}
//	defer m.Close()
//
//	m.AddObserver("user", varmgr.LabelAttached, obs)
//	m.Add("user", variant.NewString("alice")) // obs receives "change:attached"
package varmgr

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/creachadair/ejtree/variant"
)

// NotFoundError is reported when a name has no binding.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("name %q not found", e.Name) }

// Is reports whether target is variant.ErrNotFound, so that a lookup failure
// from a manager matches the same sentinel as a failure from a variant.
func (e *NotFoundError) Is(target error) bool { return target == variant.ErrNotFound }

// An Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report dispatched messages.
// The default discards all output.
func WithLogger(lg *slog.Logger) Option { return func(m *Manager) { m.log = lg } }

// A Manager holds named bindings and their observers. Its methods are safe
// for concurrent use by multiple goroutines.
type Manager struct {
	log *slog.Logger

	mu        sync.Mutex
	obj       *variant.Value // bindings, name → value
	observers []observation
	listeners []*variant.Listener
	owner     any
	closed    bool
}

// New constructs a new empty Manager.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		log: slog.New(slog.DiscardHandler),
		obj: variant.NewObject(),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, reg := range []struct {
		op    variant.Op
		event Event
	}{
		{variant.Grow, Attached},
		{variant.Shrink, Detached},
		{variant.Change, Displaced},
	} {
		l, err := m.obj.RegisterPostListener(reg.op, m.listenFor(reg.event))
		if err != nil {
			m.revokeListeners()
			return nil, fmt.Errorf("register %v listener: %w", reg.op, err)
		}
		m.listeners = append(m.listeners, l)
	}
	return m, nil
}

// listenFor returns a listener that delivers events of the given type to the
// observers of the name in the first argument of each mutation.
func (m *Manager) listenFor(event Event) variant.ListenerFunc {
	return func(src *variant.Value, op variant.Op, args []*variant.Value) bool {
		if len(args) == 0 || args[0].Kind() != variant.String {
			return true
		}
		m.dispatchLocked(event, args[0].Str(), event.String())
		return true
	}
}

// dispatchLocked delivers a message to the observers of name registered for
// event. The caller must hold m.mu.
func (m *Manager) dispatchLocked(event Event, name, subType string) {
	var targets []Observer
	for _, o := range m.observers {
		if o.event == event && o.name == name {
			targets = append(targets, o.obs)
		}
	}
	if len(targets) == 0 {
		return
	}
	msg := Message{Type: TypeChange, SubType: subType, Name: name, Source: m.obj}
	m.log.Debug("dispatch", "name", name, "event", event, "subtype", subType, "observers", len(targets))
	for _, obs := range targets {
		obs.Dispatch(msg)
	}
}

func (m *Manager) revokeListeners() {
	for _, l := range m.listeners {
		m.obj.RevokeListener(l)
	}
	m.listeners = nil
}

// Object returns the bindings object of m. Changes made to it directly are
// delivered to observers just as changes made by Add, but are not
// synchronized with other users of m.
func (m *Manager) Object() *variant.Value { return m.obj }

// Link records that m is attached to owner, such as an element or document.
// A linked manager must be unlinked before it is closed.
func (m *Manager) Link(owner any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner = owner
}

// Unlink clears the owner of m.
func (m *Manager) Unlink() { m.Link(nil) }

// Linked reports whether m is attached to an owner.
func (m *Manager) Linked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner != nil
}

// Close discards the observers and listeners of m and releases its bindings.
// It panics if m is still linked to an owner. Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != nil {
		panic("varmgr: close of a linked manager")
	} else if m.closed {
		return
	}
	m.closed = true
	m.observers = nil
	m.revokeListeners()
	m.obj.Release()
}

// Add binds name to v. If v is undefined, any existing binding of name is
// removed. If name is already bound to an object, array, or set, the contents
// of that container are displaced by v in place, preserving its identity, and
// the observers of displacement are notified. Otherwise the binding is set,
// which notifies attachment for a new name and displacement for an existing
// one.
func (m *Manager) Add(name string, v *variant.Value) error {
	if v == nil {
		return errors.New("varmgr: nil value")
	}
	if v.Kind() == variant.Undefined {
		return m.Remove(name, true)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.obj.Get(name); ok && cur.IsContainer() && cur != v {
		if err := cur.Displace(v); err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		m.dispatchLocked(Displaced, name, SubTypeDisplaced)
		return nil
	}
	return m.obj.Set(name, v)
}

// Get returns the value bound to name. If there is none, it reports a
// *NotFoundError.
func (m *Manager) Get(name string) (*variant.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.obj.Get(name); ok {
		return v, nil
	}
	return nil, &NotFoundError{Name: name}
}

// Has reports whether name is bound in m.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.obj.Get(name)
	return ok
}

// Remove removes the binding of name, notifying observers of detachment.
// If name is not bound, Remove reports a *NotFoundError unless silently is
// true.
func (m *Manager) Remove(name string, silently bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.obj.Get(name); !ok {
		if silently {
			return nil
		}
		return &NotFoundError{Name: name}
	}
	return m.obj.Remove(name)
}

// DispatchExcept notifies the observers of exceptions on name that the named
// exception was raised. The message subtype is the exception name.
func (m *Manager) DispatchExcept(name, except string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatchLocked(Except, name, except)
}

// AddObserver registers obs to observe the event described by label on name,
// and returns the bindings object of m. Registering the same triple more than
// once has no further effect.
//
// Observers are matched by ==, so obs must be comparable, typically a pointer.
// If obs is nil or not comparable, nothing is registered and AddObserver
// returns nil.
func (m *Manager) AddObserver(name, label string, obs Observer) *variant.Value {
	if !isComparable(obs) {
		return nil
	}
	o := observation{name: name, event: ParseEvent(label), obs: obs}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.observers, o) {
		m.observers = append(m.observers, o)
	}
	return m.obj
}

// RemoveObserver removes the registration of obs for the event described by
// label on name. It returns the bindings object of m and true if the
// registration was found; otherwise it returns nil, false.
func (m *Manager) RemoveObserver(name, label string, obs Observer) (*variant.Value, bool) {
	if !isComparable(obs) {
		return nil, false
	}
	o := observation{name: name, event: ParseEvent(label), obs: obs}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.observers, o)
	if i < 0 {
		return nil, false
	}
	m.observers = slices.Delete(m.observers, i, i+1)
	return m.obj, true
}

// isComparable reports whether obs is non-nil and can be compared with ==
// without panicking.
func isComparable(obs Observer) bool {
	return obs != nil && reflect.ValueOf(obs).Comparable()
}

// Observed reports whether any observer is registered for the event described
// by label on name.
func (m *Manager) Observed(name, label string) bool {
	event := ParseEvent(label)
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.observers, func(o observation) bool {
		return o.name == name && o.event == event
	})
}
