// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package interp

import (
	"fmt"

	"github.com/creachadair/ejtree/variant"
)

// Symbols naming the symbol variables of a frame.
const (
	SymQuestion    = '?' // the result of the preceding operation
	SymLessThan    = '<' // the input data
	SymAt          = '@' // the target position
	SymExclamation = '!' // the temporary variables of the frame
	SymColon       = ':' // the current key
	SymEqual       = '=' // the current value
	SymPercent     = '%' // the iteration counter
	SymCaret       = '^' // the content
)

// symIndex maps a symbol to its slot in a frame.
func symIndex(sym byte) (int, bool) {
	switch sym {
	case SymQuestion:
		return 0, true
	case SymLessThan:
		return 1, true
	case SymAt:
		return 2, true
	case SymExclamation:
		return 3, true
	case SymColon:
		return 4, true
	case SymEqual:
		return 5, true
	case SymPercent:
		return 6, true
	case SymCaret:
		return 7, true
	}
	return 0, false
}

// A Frame is an activation record of a Stack.
type Frame struct {
	Pos      *Element // the element being executed
	Scope    *Element // if set, the start of the scope chain in place of Pos
	Silently bool     // fall back to a default binding instead of failing

	parent  *Frame
	symbols [8]*variant.Value
}

func newFrame(pos *Element, parent *Frame) *Frame {
	f := &Frame{Pos: pos, parent: parent}
	for i := range f.symbols {
		f.symbols[i] = variant.Undef()
	}
	f.symbols[3] = variant.NewObject()
	return f
}

// Parent returns the frame below f on its stack, or nil.
func (f *Frame) Parent() *Frame { return f.parent }

// Symbol returns the value of the symbol variable sym of f.
// It reports ErrBadName if sym is not a valid symbol.
func (f *Frame) Symbol(sym byte) (*variant.Value, error) {
	i, ok := symIndex(sym)
	if !ok {
		return nil, fmt.Errorf("symbol %q: %w", sym, ErrBadName)
	}
	return f.symbols[i], nil
}

// SetSymbol sets the value of the symbol variable sym of f. The temporary
// variables "!" must be an object.
func (f *Frame) SetSymbol(sym byte, v *variant.Value) error {
	i, ok := symIndex(sym)
	if !ok {
		return fmt.Errorf("symbol %q: %w", sym, ErrBadName)
	} else if v == nil {
		v = variant.Undef()
	}
	if sym == SymExclamation && v.Kind() != variant.Object {
		return fmt.Errorf("symbol %q: %w", sym, variant.ErrInvalidType)
	}
	f.symbols[i] = v
	return nil
}

// Temp returns the temporary variables of f.
func (f *Frame) Temp() *variant.Value { return f.symbols[3] }
