// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package interp implements the binding and lookup of named variables on the
// execution stack of an interpreter.
//
// Variables live in variable managers at three levels: an [Element] of the
// document tree holds scope variables, a [Document] holds the variables of a
// running document (the coroutine level), and an [Instance] holds variables
// shared by every document it runs. Each [Frame] of a [Stack] additionally
// carries symbol variables, including a temporary object "!" that shadows all
// other bindings.
package interp

import (
	"github.com/creachadair/ejtree/variant"
	"github.com/creachadair/ejtree/varmgr"
	"github.com/creachadair/ejtree/vcm"
)

// An Element is a node of a document tree. Its attributes are unevaluated
// VCM trees. The variable manager of an element is created when a variable
// is first bound there.
type Element struct {
	Tag   string
	Attrs map[string]*vcm.Node

	parent   *Element
	children []*Element
	vars     *varmgr.Manager
}

// NewElement constructs a detached element with the given tag.
func NewElement(tag string) *Element { return &Element{Tag: tag, Attrs: make(map[string]*vcm.Node)} }

// SetAttr sets the value of the named attribute of e and returns e.
func (e *Element) SetAttr(name string, val *vcm.Node) *Element {
	if e.Attrs == nil {
		e.Attrs = make(map[string]*vcm.Node)
	}
	e.Attrs[name] = val
	return e
}

// Append adds kids as children of e and returns e.
// It panics if any of kids already has a parent.
func (e *Element) Append(kids ...*Element) *Element {
	for _, kid := range kids {
		if kid.parent != nil {
			panic("interp: element already has a parent")
		}
		kid.parent = e
		e.children = append(e.children, kid)
	}
	return e
}

// Parent returns the parent of e, or nil if e is the root of its tree.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the children of e. The caller must not modify the slice.
func (e *Element) Children() []*Element { return e.children }

// ID returns the evaluated value of the id attribute of e, and reports
// whether e has an id attribute that evaluates to a string.
func (e *Element) ID() (string, bool) {
	attr, ok := e.Attrs["id"]
	if !ok || attr == nil {
		return "", false
	}
	v, err := vcm.Eval(attr)
	if err != nil || v.Kind() != variant.String {
		return "", false
	}
	return v.Str(), true
}

// Vars returns the variable manager of e, creating it if necessary.
func (e *Element) Vars() *varmgr.Manager {
	if e.vars == nil {
		e.vars = mustManager(e)
	}
	return e.vars
}

// Var returns the scope variable of e with the given name, if it exists.
// Unlike Vars, it does not create a manager.
func (e *Element) Var(name string) (*variant.Value, bool) {
	if e.vars == nil {
		return nil, false
	}
	v, err := e.vars.Get(name)
	return v, err == nil
}

// Bind binds name to v in the scope of e.
func (e *Element) Bind(name string, v *variant.Value) error { return e.Vars().Add(name, v) }

// Unbind removes the scope variable of e with the given name, and reports
// whether it was bound.
func (e *Element) Unbind(name string) bool {
	if _, ok := e.Var(name); !ok {
		return false
	}
	return e.vars.Remove(name, false) == nil
}

// close releases the variable managers of e and its descendants.
func (e *Element) close() {
	for _, c := range e.children {
		c.close()
	}
	closeManager(e.vars)
	e.vars = nil
}

// A Document is a document tree and its document-level variables.
type Document struct {
	Root *Element

	vars *varmgr.Manager
}

// NewDocument constructs a document with the given root element.
func NewDocument(root *Element) *Document {
	d := &Document{Root: root}
	d.vars = mustManager(d)
	return d
}

// Vars returns the document-level variable manager of d.
func (d *Document) Vars() *varmgr.Manager { return d.vars }

// Close releases the variable managers of d and of its elements.
func (d *Document) Close() {
	if d.Root != nil {
		d.Root.close()
	}
	closeManager(d.vars)
}

// An Instance holds the variables shared by all the documents it runs.
type Instance struct {
	vars *varmgr.Manager
}

// NewInstance constructs an instance with no variables.
func NewInstance() *Instance {
	in := new(Instance)
	in.vars = mustManager(in)
	return in
}

// Vars returns the instance-level variable manager of in.
func (in *Instance) Vars() *varmgr.Manager { return in.vars }

// Close releases the variables of in.
func (in *Instance) Close() { closeManager(in.vars) }

// mustManager returns a new variable manager linked to owner.
// Creating a manager fails only if its bindings object rejects listeners,
// which an object never does.
func mustManager(owner any) *varmgr.Manager {
	m, err := varmgr.New()
	if err != nil {
		panic("interp: create variable manager: " + err.Error())
	}
	m.Link(owner)
	return m
}

func closeManager(m *varmgr.Manager) {
	if m != nil {
		m.Unlink()
		m.Close()
	}
}
