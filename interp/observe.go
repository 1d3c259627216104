// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package interp

import (
	"fmt"

	"github.com/creachadair/ejtree/variant"
	"github.com/creachadair/ejtree/varmgr"
)

// Keys of the event object constructed by NamedVarForEvent.
const (
	keyFlag = "__name_observe"
	keyName = "name"
	keyMgr  = "mgr"
)

// namedVarMgr returns the manager that holds, or would hold, the named
// variable observed from s: the document if it binds name, else the instance
// if it binds name, else the document.
func (s *Stack) namedVarMgr(name string) *varmgr.Manager {
	if s.Doc != nil && s.Doc.vars.Has(name) {
		return s.Doc.vars
	} else if s.Inst != nil && s.Inst.vars.Has(name) {
		return s.Inst.vars
	} else if s.Doc != nil {
		return s.Doc.vars
	}
	return nil
}

// NamedVarObserved returns the bindings object of the manager that would
// report changes to name, or nil if there is none.
func (s *Stack) NamedVarObserved(name string) *variant.Value {
	if m := s.namedVarMgr(name); m != nil {
		return m.Object()
	}
	return nil
}

// AddNamedVarObserver registers s to observe the event described by label on
// the named variable, and returns the bindings object of the manager
// observed. It returns nil if s has no document or instance.
func (s *Stack) AddNamedVarObserver(name, label string) *variant.Value {
	if m := s.namedVarMgr(name); m != nil {
		return m.AddObserver(name, label, s)
	}
	return nil
}

// RemoveNamedVarObserver removes the registration of s for the event
// described by label on the named variable, trying the document variables
// first and then the instance variables. It returns the bindings object of
// the manager the registration was removed from, and reports whether one was
// found.
func (s *Stack) RemoveNamedVarObserver(name, label string) (*variant.Value, bool) {
	if s.Doc != nil {
		if obj, ok := s.Doc.vars.RemoveObserver(name, label, s); ok {
			return obj, true
		}
	}
	if s.Inst != nil {
		if obj, ok := s.Inst.vars.RemoveObserver(name, label, s); ok {
			return obj, true
		}
	}
	return nil, false
}

// NamedVarForObserved returns a native value that observes the named
// variable as seen from elem. The value matches event objects built by
// NamedVarForEvent for the same name whose manager belongs to elem, one of
// its ancestors, or the document of s.
func (s *Stack) NamedVarForObserved(name string, elem *Element) *variant.Value {
	return variant.NewNative(&namedObserve{name: name, stack: s, elem: elem})
}

// NamedVarForEvent returns an event object describing a change to the named
// variable in the document of s.
func (s *Stack) NamedVarForEvent(name string) *variant.Value {
	var mgr *varmgr.Manager
	if s.Doc != nil {
		mgr = s.Doc.vars
	}
	obj := variant.NewObject()
	for _, m := range []struct {
		key string
		val *variant.Value
	}{
		{keyFlag, variant.NewBool(true)},
		{keyName, variant.NewString(name)},
		{keyMgr, variant.NewNative(mgr)},
	} {
		// Set on a fresh object with a non-nil value does not fail.
		if err := obj.Set(m.key, m.val); err != nil {
			panic(fmt.Sprintf("event object: %v", err))
		}
	}
	return obj
}

// namedObserve is the native entity of an observation of a named variable.
type namedObserve struct {
	name  string
	stack *Stack
	elem  *Element
}

// MatchObserve implements the variant.Matcher interface.
func (n *namedObserve) MatchObserve(val *variant.Value) bool {
	if n.stack == nil || val.Kind() != variant.Object {
		return false
	}
	if flag, ok := val.Get(keyFlag); !ok || !flag.Bool() {
		return false
	}
	if name, ok := val.Get(keyName); !ok || name.Kind() != variant.String || name.Str() != n.name {
		return false
	}
	mv, ok := val.Get(keyMgr)
	if !ok || mv.Kind() != variant.Native {
		return false
	}
	want, ok := mv.Entity().(*varmgr.Manager)
	if !ok || want == nil {
		return false
	}
	for e := n.elem; e != nil; e = e.parent {
		if e.vars == want {
			return true
		}
	}
	return n.stack.Doc != nil && n.stack.Doc.vars == want
}

// OnObserve implements the variant.ObserveHook interface.
// Every event is accepted.
func (n *namedObserve) OnObserve(event, sub string) bool { return true }

// OnRelease implements the variant.Releaser interface.
func (n *namedObserve) OnRelease() { n.stack, n.elem = nil, nil }
