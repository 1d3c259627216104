// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package variant

import "slices"

// An Op identifies a class of container mutation observed by listeners.
type Op byte

// Constants defining the valid Op values.
const (
	Grow   Op = iota + 1 // a member or element was added
	Shrink               // a member or element was removed
	Change               // a member was replaced, or the container displaced
)

func (o Op) String() string {
	switch o {
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	case Change:
		return "change"
	}
	return "unknown"
}

// A ListenerFunc is called after a mutation of type op has been applied to
// src. The arguments depend on the container and operation:
//
//	Object Grow:    key, value
//	Object Shrink:  key, old value
//	Object Change:  key, old value, new value
//	Array/Set Grow: index, value
//	Array Shrink:   index, old value
//	Displace:       source of the new contents
//
// The return value is reserved for pre-listeners and is ignored.
type ListenerFunc func(src *Value, op Op, args []*Value) bool

// A Listener is a registered post-listener. Its only use is to revoke the
// registration.
type Listener struct {
	op Op
	fn ListenerFunc
}

// RegisterPostListener registers fn to be called after each mutation of type
// op applied to v. It reports ErrInvalidType if v is not a container.
func (v *Value) RegisterPostListener(op Op, fn ListenerFunc) (*Listener, error) {
	if !v.IsContainer() {
		return nil, ErrInvalidType
	} else if fn == nil || op < Grow || op > Change {
		return nil, ErrInvalidType
	}
	l := &Listener{op: op, fn: fn}
	v.listeners = append(v.listeners, l)
	return l, nil
}

// RevokeListener removes the registration of l from v, and reports whether
// it was found.
func (v *Value) RevokeListener(l *Listener) bool {
	i := slices.Index(v.listeners, l)
	if i < 0 {
		return false
	}
	v.listeners = slices.Delete(v.listeners, i, i+1)
	return true
}

// notify calls the listeners for op registered on v. The listener list is
// copied first, so a listener may revoke itself or others while running.
func (v *Value) notify(op Op, args ...*Value) {
	if len(v.listeners) == 0 {
		return
	}
	for _, l := range slices.Clone(v.listeners) {
		if l.op == op {
			l.fn(v, op, args)
		}
	}
}
