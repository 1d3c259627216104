// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ejtree

import (
	"cmp"
	"io"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (still escaped) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The scanner ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Report an object key at loc. The value of the member follows. The text
	// of the key is unquoted but may contain escapes (see Unescape).
	Key(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommaHandler is an optional interface that a Handler may implement to
// observe separators. If the handler does not provide this method, commas
// are silently discarded.
type CommaHandler interface {
	Comma(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s *Scanner
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{s: NewScanner(r)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// SetMaxDepth limits the nesting depth of the scanner associated with s.
func (s *Stream) SetMaxDepth(n int) { s.s.SetMaxDepth(n) }

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError]. Errors reported by h are returned unchanged.
func (s *Stream) Parse(h Handler) error {
	for {
		err := s.s.Next()
		if err == io.EOF {
			h.EndOfInput(s.s)
			return nil
		} else if err != nil {
			return err
		}
		if err := s.deliver(h); err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF.
func (s *Stream) ParseOne(h Handler) error {
	for {
		err := s.s.Next()
		if err == io.EOF {
			h.EndOfInput(s.s)
			return err
		} else if err != nil {
			return err
		}
		if err := s.deliver(h); err != nil {
			return err
		}
		if s.s.Depth() == 0 && s.s.Token() != Comma {
			return nil
		}
	}
}

// deliver reports the current token of the scanner to h.
func (s *Stream) deliver(h Handler) error {
	switch tok := s.s.Token(); tok {
	case StartObject:
		return h.BeginObject(s.s)
	case EndObject:
		return h.EndObject(s.s)
	case StartArray:
		return h.BeginArray(s.s)
	case EndArray:
		return h.EndArray(s.s)
	case Key:
		return h.Key(s.s)
	case Comma:
		if ch, ok := h.(CommaHandler); ok {
			ch.Comma(s.s)
		}
		return nil
	default:
		if tok.IsValue() {
			return h.Value(s.s)
		}
		return cmp.Or(s.s.Err(), error(&SyntaxError{
			Kind:     BadJSON,
			Location: s.s.Location().First,
			Offset:   s.s.Span().Pos,
			Char:     eofRune,
		}))
	}
}
