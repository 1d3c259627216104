// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package variant

// Matcher is an optional interface for native entities that can decide
// whether an event source value refers to what they observe.
type Matcher interface {
	MatchObserve(val *Value) bool
}

// ObserveHook is an optional interface for native entities that are notified
// when an observation is established on them. A false result rejects it.
type ObserveHook interface {
	OnObserve(event, sub string) bool
}

// Releaser is an optional interface for native entities that hold resources
// to be dropped when the value is released.
type Releaser interface {
	OnRelease()
}

// MatchObserve reports whether native value v matches val. If v is not
// native or its entity does not implement Matcher, it reports false.
func (v *Value) MatchObserve(val *Value) bool {
	if m, ok := v.native.(Matcher); ok && v.kind == Native {
		return m.MatchObserve(val)
	}
	return false
}

// OnObserve reports whether native value v accepts an observation of the
// given event. Entities that do not implement ObserveHook accept.
func (v *Value) OnObserve(event, sub string) bool {
	if h, ok := v.native.(ObserveHook); ok && v.kind == Native {
		return h.OnObserve(event, sub)
	}
	return v.kind == Native
}
