// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package varmgr

import (
	"strings"

	"github.com/creachadair/ejtree/variant"
)

// An Event identifies the class of change an observer is registered for.
type Event byte

// Constants defining the valid Event values.
const (
	Attached  Event = iota // a binding was added
	Detached               // a binding was removed
	Displaced              // a binding was replaced or its contents displaced
	Except                 // an exception was raised for a binding
)

// Event labels accepted by ParseEvent.
const (
	LabelAttached  = "change:attached"
	LabelDetached  = "change:detached"
	LabelDisplaced = "change:displaced"
	LabelExcept    = "except:"
)

// Message types and subtypes delivered to observers.
const (
	TypeChange       = "change"
	SubTypeAttached  = "attached"
	SubTypeDetached  = "detached"
	SubTypeDisplaced = "displaced"
)

var eventStr = [...]string{
	Attached:  SubTypeAttached,
	Detached:  SubTypeDetached,
	Displaced: SubTypeDisplaced,
	Except:    "except",
}

func (e Event) String() string {
	if int(e) >= len(eventStr) {
		return "unknown"
	}
	return eventStr[e]
}

// ParseEvent returns the Event for an observation label. Any label beginning
// with "except:" denotes Except; unrecognized labels denote Attached.
func ParseEvent(label string) Event {
	switch {
	case label == LabelAttached:
		return Attached
	case label == LabelDetached:
		return Detached
	case label == LabelDisplaced:
		return Displaced
	case strings.HasPrefix(label, LabelExcept):
		return Except
	}
	return Attached
}

// A Message is a notification delivered to an observer.
type Message struct {
	Type    string         // always "change"
	SubType string         // "attached", "detached", "displaced", or an exception name
	Name    string         // the name of the binding
	Source  *variant.Value // the bindings object of the manager
}

// An Observer receives messages about changes to observed bindings.
// Observers are compared by identity, so implementations should be pointers
// or other comparable types.
//
// Dispatch is called while the manager is locked, so it must not call back
// into the same manager synchronously.
type Observer interface {
	Dispatch(Message)
}

// observation records a registration of an observer.
type observation struct {
	name  string
	event Event
	obs   Observer
}
