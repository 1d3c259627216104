// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package interp

import (
	"fmt"
	"strings"

	"github.com/creachadair/ejtree/variant"
	"github.com/creachadair/ejtree/varmgr"
)

// FindNamedVar resolves name from the current frame of s. The temporary
// variables of each frame are searched first, from the innermost frame
// outward; then the scope chain; then the document variables; then the
// instance variables. If no binding is found, it reports a
// *varmgr.NotFoundError.
func (s *Stack) FindNamedVar(name string) (*variant.Value, error) {
	if f := s.top; f != nil {
		if v, ok := findTempVar(f, name); ok {
			return v, nil
		}
		if v, ok := findScopeVar(f, name); ok {
			return v, nil
		}
	}
	if s.Doc != nil {
		if v, err := s.Doc.vars.Get(name); err == nil {
			return v, nil
		}
	}
	if s.Inst != nil {
		if v, err := s.Inst.vars.Get(name); err == nil {
			return v, nil
		}
	}
	return nil, &varmgr.NotFoundError{Name: name}
}

func findTempVar(f *Frame, name string) (*variant.Value, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.Temp().Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// findScopeVar searches the scope chain of f. If a frame has a scope, the
// search covers that element and its ancestors and ends there. Otherwise it
// checks the position of the frame and continues with the parent frame.
func findScopeVar(f *Frame, name string) (*variant.Value, bool) {
	for ; f != nil; f = f.parent {
		if f.Scope != nil {
			return findElementVar(f.Scope, name)
		} else if f.Pos == nil {
			break
		}
		if v, ok := f.Pos.Var(name); ok {
			return v, true
		}
	}
	return nil, false
}

func findElementVar(e *Element, name string) (*variant.Value, bool) {
	for ; e != nil; e = e.parent {
		if v, ok := e.Var(name); ok {
			return v, true
		}
	}
	return nil, false
}

// UnbindNamedVar removes the binding of name visible from the current frame
// of s. The temporary variables of each frame are searched first, then the
// scope variables of the frame position and its ancestors, then the document
// variables. If no binding is found, it reports a *varmgr.NotFoundError.
func (s *Stack) UnbindNamedVar(name string) error {
	f := s.top
	for p := f; p != nil; p = p.parent {
		if _, ok := p.Temp().Get(name); ok {
			return p.Temp().Remove(name)
		}
	}
	if f != nil {
		for e := f.Pos; e != nil; e = e.parent {
			if e.Unbind(name) {
				return nil
			}
		}
	}
	if s.Doc != nil && s.Doc.vars.Has(name) {
		return s.Doc.vars.Remove(name, false)
	}
	return &varmgr.NotFoundError{Name: name}
}

// Keywords accepted as binding targets by BindNamedVariable.
var levelKeywords = map[string]int{
	"_parent":      1,
	"_last":        1,
	"_grandparent": 2,
	"_nexttolast":  2,
	"_root":        -1,
	"_topmost":     -1,
}

// BindNamedVariable binds name to v at the location selected by at, relative
// to the position of frame f:
//
//   - nil binds at the parent of the position (the default);
//   - a string "#id" binds at the nearest ancestor-or-self of the position
//     whose id attribute evaluates to id;
//   - a string beginning with "_" is a keyword: "_parent" and "_last" bind one
//     level up, "_grandparent" and "_nexttolast" two levels up, and "_root"
//     and "_topmost" at the document level;
//   - any value that converts to an unsigned integer n binds n levels up;
//   - anything else binds at the document level.
//
// If the target does not exist, BindNamedVariable reports ErrEntityNotFound
// (or ErrBadName for an unknown keyword), unless f is silent, in which case it
// falls back to a default binding.
func (s *Stack) BindNamedVariable(f *Frame, name string, at, v *variant.Value) error {
	if at == nil {
		return s.bindByLevel(f, name, v, 1)
	}
	if at.Kind() == variant.String {
		target := at.Str()
		if id, ok := strings.CutPrefix(target, "#"); ok {
			return s.bindByID(f, name, v, id)
		} else if strings.HasPrefix(target, "_") {
			return s.bindByKeyword(f, name, v, target)
		}
	}
	if level, ok := variant.CastToULongInt(at); ok {
		return s.bindByLevel(f, name, v, level)
	}
	return s.bindAtDocument(name, v)
}

func (s *Stack) bindByLevel(f *Frame, name string, v *variant.Value, level uint64) error {
	p := f.Pos
	for i := uint64(0); i < level && p != nil; i++ {
		p = p.parent
	}
	if p != nil {
		return p.Bind(name, v)
	} else if f.Silently {
		return s.bindAtDocument(name, v)
	}
	return fmt.Errorf("bind %q %d levels up: %w", name, level, ErrEntityNotFound)
}

func (s *Stack) bindByID(f *Frame, name string, v *variant.Value, id string) error {
	for p := f.Pos; p != nil; p = p.parent {
		if pid, ok := p.ID(); ok && pid == id {
			return p.Bind(name, v)
		}
	}
	if f.Silently {
		return s.bindByLevel(f, name, v, 1)
	}
	return fmt.Errorf("bind %q at #%s: %w", name, id, ErrEntityNotFound)
}

func (s *Stack) bindByKeyword(f *Frame, name string, v *variant.Value, kw string) error {
	level, ok := levelKeywords[kw]
	switch {
	case ok && level < 0:
		return s.bindAtDocument(name, v)
	case ok:
		return s.bindByLevel(f, name, v, uint64(level))
	case f.Silently:
		return s.bindByLevel(f, name, v, 1)
	}
	return fmt.Errorf("bind %q at %q: %w", name, kw, ErrBadName)
}

func (s *Stack) bindAtDocument(name string, v *variant.Value) error {
	if s.Doc == nil {
		return fmt.Errorf("bind %q: no document: %w", name, ErrEntityNotFound)
	}
	return s.Doc.vars.Add(name, v)
}

// SymbolizedVar returns the symbol variable sym of the frame n levels below
// the current frame of s.
func (s *Stack) SymbolizedVar(n int, sym byte) (*variant.Value, error) {
	if _, ok := symIndex(sym); !ok {
		return nil, fmt.Errorf("symbol %q: %w", sym, ErrBadName)
	}
	f := s.top
	for i := 0; i < n && f != nil; i++ {
		f = f.parent
	}
	if f == nil {
		return nil, fmt.Errorf("symbol %q at level %d: %w", sym, n, ErrEntityNotFound)
	}
	return f.Symbol(sym)
}

// AnchorSymbolizedVar returns the symbol variable sym of the innermost frame
// whose position has the id anchor.
func (s *Stack) AnchorSymbolizedVar(anchor string, sym byte) (*variant.Value, error) {
	if _, ok := symIndex(sym); !ok {
		return nil, fmt.Errorf("symbol %q: %w", sym, ErrBadName)
	}
	for f := s.top; f != nil; f = f.parent {
		if f.Pos == nil {
			continue
		}
		if id, ok := f.Pos.ID(); ok && id == anchor {
			return f.Symbol(sym)
		}
	}
	return nil, fmt.Errorf("symbol %q at #%s: %w", sym, anchor, ErrEntityNotFound)
}
