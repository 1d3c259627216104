// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package interp

import (
	"errors"
	"sync"

	"github.com/creachadair/ejtree/varmgr"
)

var (
	// ErrBadName is reported for an unrecognized symbol or binding target.
	ErrBadName = errors.New("bad name")

	// ErrEntityNotFound is reported when a binding target does not resolve to
	// an element.
	ErrEntityNotFound = errors.New("entity not found")
)

// A Stack is the execution stack of a running document. A Stack is an
// observer of variable managers: messages dispatched to it are queued until
// they are collected by Messages.
type Stack struct {
	Doc  *Document
	Inst *Instance

	top *Frame

	mu   sync.Mutex
	msgs []varmgr.Message
}

// NewStack constructs an empty stack for doc running in inst.
func NewStack(doc *Document, inst *Instance) *Stack { return &Stack{Doc: doc, Inst: inst} }

// PushFrame pushes a new frame positioned at pos and returns it.
func (s *Stack) PushFrame(pos *Element) *Frame {
	s.top = newFrame(pos, s.top)
	return s.top
}

// PopFrame removes and returns the current frame, or returns nil if s is
// empty.
func (s *Stack) PopFrame() *Frame {
	f := s.top
	if f != nil {
		s.top = f.parent
		f.parent = nil
	}
	return f
}

// Current returns the innermost frame of s, or nil if s is empty.
func (s *Stack) Current() *Frame { return s.top }

// Depth reports the number of frames on s.
func (s *Stack) Depth() (n int) {
	for f := s.top; f != nil; f = f.parent {
		n++
	}
	return
}

// Dispatch queues msg for delivery to s. It satisfies varmgr.Observer, and is
// safe to call from any goroutine.
func (s *Stack) Dispatch(msg varmgr.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

// Messages removes and returns the queued messages of s in order of arrival.
func (s *Stack) Messages() []varmgr.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.msgs
	s.msgs = nil
	return out
}
